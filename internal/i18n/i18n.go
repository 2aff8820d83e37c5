// Package i18n holds the supported interface languages and the static
// translation table used for every user-facing string. Missing keys fall
// back to English, missing languages fall back to English as well.
package i18n

// Lang identifies one of the supported interface languages.
type Lang string

const (
	LangUzbekLatin    Lang = "uz"
	LangUzbekCyrillic Lang = "uzc"
	LangRussian       Lang = "ru"
	LangEnglish       Lang = "en"
)

// Default is used for sessions that never picked a language.
const Default = LangEnglish

// Supported lists all selectable languages in menu order.
var Supported = []Lang{LangUzbekLatin, LangUzbekCyrillic, LangRussian, LangEnglish}

// Valid reports whether l is one of the supported languages.
func Valid(l Lang) bool {
	switch l {
	case LangUzbekLatin, LangUzbekCyrillic, LangRussian, LangEnglish:
		return true
	}
	return false
}

// Name returns the human-readable language name used in LLM instructions.
func Name(l Lang) string {
	switch l {
	case LangUzbekLatin:
		return "Uzbek (Latin)"
	case LangUzbekCyrillic:
		return "Uzbek (Cyrillic)"
	case LangRussian:
		return "Russian"
	default:
		return "English"
	}
}

// T returns the translation for key in lang. Falls back to English, then
// to the key itself so a missing entry is visible instead of silent.
func T(lang Lang, key string) string {
	if d, ok := translations[lang]; ok {
		if s, ok := d[key]; ok {
			return s
		}
	}
	if s, ok := translations[LangEnglish][key]; ok {
		return s
	}
	return key
}

// LanguageButtons maps language-selection button captions to languages.
// The captions are fixed and identical across languages.
var LanguageButtons = map[string]Lang{
	"🇺🇿 O‘zbek (Lotin)": LangUzbekLatin,
	"Ўзбекча (Крилл)":    LangUzbekCyrillic,
	"🇷🇺 Русский":         LangRussian,
	"🇬🇧 English":         LangEnglish,
}

// ChooseLanguagePrompt is shown before a language is known, so it carries
// all languages at once.
const ChooseLanguagePrompt = "Tilni tanlang / Выберите язык / Choose language:"

var translations = map[Lang]map[string]string{
	LangEnglish: {
		"welcome":              "🌿 Welcome! I help diagnose crop diseases from leaf photos. Choose an option below.",
		"ask_question":         "Ask a question",
		"send_photo":           "Detect disease",
		"weather":              "Weather",
		"send_location_btn":    "Send location",
		"report":               "Report issue",
		"change_language":      "Change language",
		"weather_5":            "5 days",
		"weather_10":           "10 days",
		"weather_15":           "15 days",
		"weather_choose_days":  "For how many days do you want the forecast?",
		"location_saved":       "📍 Location saved.",
		"location_not_set":     "📍 Location is not set. Please share your location first.",
		"weather_error":        "❌ Could not fetch the weather. Please try again later.",
		"ask_crop_name_first":  "🌱 Which crop is it? Type the crop name (for example: tomato).",
		"send_photo_now":       "📸 Now send a photo of the leaf.",
		"report_prompt":        "🛠 Describe the issue and I will pass it on.",
		"report_success":       "✅ Thank you, your report has been saved.",
		"ask_question_prompt":  "❓ Write your question about farming.",
		"topic_not_allowed":    "❌ I can only answer questions about agriculture.",
		"photo_analyzing":      "⏳ Analyzing the photo, please wait...",
		"please_type_crop":     "🌱 Please type the crop name first, then send the photo.",
		"not_leaf":             "❌ This does not look like a plant leaf. Please send a leaf photo.",
		"not_valid_image":      "❌ This is not a valid image. Please send another photo.",
		"access_denied":        "🚫 Access denied. Please contact the administrator.",
		"general_error":        "❌ An error occurred. Please try again later.",
		"weather_title":        "%d-day forecast:",
		"diagnosis_crop":       "Crop",
		"diagnosis_disease":    "Disease",
		"diagnosis_confidence": "Confidence",
		"history_title":        "Your recent diagnoses:",
		"history_empty":        "No diagnoses yet.",
	},
	LangUzbekLatin: {
		"welcome":              "🌿 Xush kelibsiz! Men barg rasmidan o‘simlik kasalligini aniqlashga yordam beraman. Quyidagi bo‘limlardan birini tanlang.",
		"ask_question":         "Savol berish",
		"send_photo":           "Kasallik aniqlash",
		"weather":              "Ob-havo",
		"send_location_btn":    "Joylashuv yuborish",
		"report":               "Xatolik haqida xabar",
		"change_language":      "Tilni o‘zgartirish",
		"weather_5":            "5 kun",
		"weather_10":           "10 kun",
		"weather_15":           "15 kun",
		"weather_choose_days":  "Necha kunlik ob-havo kerak?",
		"location_saved":       "📍 Joylashuv saqlandi.",
		"location_not_set":     "📍 Joylashuv saqlanmagan. Avval joylashuvingizni yuboring.",
		"weather_error":        "❌ Ob-havo ma’lumotini olib bo‘lmadi. Keyinroq urinib ko‘ring.",
		"ask_crop_name_first":  "🌱 Qaysi ekin? Ekin nomini yozing (masalan: pomidor).",
		"send_photo_now":       "📸 Endi barg rasmini yuboring.",
		"report_prompt":        "🛠 Muammoni yozib yuboring, men uni yetkazaman.",
		"report_success":       "✅ Rahmat, xabaringiz saqlandi.",
		"ask_question_prompt":  "❓ Qishloq xo‘jaligi bo‘yicha savolingizni yozing.",
		"topic_not_allowed":    "❌ Men faqat qishloq xo‘jaligiga oid savollarga javob beraman.",
		"photo_analyzing":      "⏳ Rasm tahlil qilinmoqda, kuting...",
		"please_type_crop":     "🌱 Avval ekin nomini yozing, keyin rasm yuboring.",
		"not_leaf":             "❌ Bu rasm o‘simlik bargiga o‘xshamaydi. Barg rasmini yuboring.",
		"not_valid_image":      "❌ Rasm yaroqsiz. Boshqa rasm yuboring.",
		"access_denied":        "🚫 Kirish taqiqlangan. Administrator bilan bog‘laning.",
		"general_error":        "❌ Xatolik yuz berdi. Keyinroq urinib ko‘ring.",
		"weather_title":        "%d kunlik ob-havo:",
		"diagnosis_crop":       "O‘simlik",
		"diagnosis_disease":    "Kasallik",
		"diagnosis_confidence": "Ishonchlilik",
		"history_title":        "So‘nggi tashxislaringiz:",
		"history_empty":        "Hali tashxislar yo‘q.",
	},
	LangUzbekCyrillic: {
		"welcome":              "🌿 Хуш келибсиз! Мен барг расмидан ўсимлик касаллигини аниқлашга ёрдам бераман. Қуйидаги бўлимлардан бирини танланг.",
		"ask_question":         "Савол бериш",
		"send_photo":           "Касаллик аниқлаш",
		"weather":              "Об-ҳаво",
		"send_location_btn":    "Жойлашув юбориш",
		"report":               "Хатолик ҳақида хабар",
		"change_language":      "Тилни ўзгартириш",
		"weather_5":            "5 кун",
		"weather_10":           "10 кун",
		"weather_15":           "15 кун",
		"weather_choose_days":  "Неча кунлик об-ҳаво керак?",
		"location_saved":       "📍 Жойлашув сақланди.",
		"location_not_set":     "📍 Жойлашув сақланмаган. Аввал жойлашувингизни юборинг.",
		"weather_error":        "❌ Об-ҳаво маълумотини олиб бўлмади. Кейинроқ уриниб кўринг.",
		"ask_crop_name_first":  "🌱 Қайси экин? Экин номини ёзинг (масалан: помидор).",
		"send_photo_now":       "📸 Энди барг расмини юборинг.",
		"report_prompt":        "🛠 Муаммони ёзиб юборинг, мен уни етказаман.",
		"report_success":       "✅ Раҳмат, хабарингиз сақланди.",
		"ask_question_prompt":  "❓ Қишлоқ хўжалиги бўйича саволингизни ёзинг.",
		"topic_not_allowed":    "❌ Мен фақат қишлоқ хўжалигига оид саволларга жавоб бераман.",
		"photo_analyzing":      "⏳ Расм таҳлил қилинмоқда, кутинг...",
		"please_type_crop":     "🌱 Аввал экин номини ёзинг, кейин расм юборинг.",
		"not_leaf":             "❌ Бу расм ўсимлик баргига ўхшамайди. Барг расмини юборинг.",
		"not_valid_image":      "❌ Расм яроқсиз. Бошқа расм юборинг.",
		"access_denied":        "🚫 Кириш тақиқланган. Администратор билан боғланинг.",
		"general_error":        "❌ Хатолик юз берди. Кейинроқ уриниб кўринг.",
		"weather_title":        "%d кунлик об-ҳаво:",
		"diagnosis_crop":       "Ўсимлик",
		"diagnosis_disease":    "Касаллик",
		"diagnosis_confidence": "Ишончлилик",
		"history_title":        "Сўнгги ташхисларингиз:",
		"history_empty":        "Ҳали ташхислар йўқ.",
	},
	LangRussian: {
		"welcome":              "🌿 Добро пожаловать! Я помогаю определить болезни растений по фото листа. Выберите раздел ниже.",
		"ask_question":         "Задать вопрос",
		"send_photo":           "Определить болезнь",
		"weather":              "Погода",
		"send_location_btn":    "Отправить локацию",
		"report":               "Сообщить об ошибке",
		"change_language":      "Сменить язык",
		"weather_5":            "5 дней",
		"weather_10":           "10 дней",
		"weather_15":           "15 дней",
		"weather_choose_days":  "На сколько дней нужен прогноз?",
		"location_saved":       "📍 Локация сохранена.",
		"location_not_set":     "📍 Локация не задана. Сначала отправьте вашу локацию.",
		"weather_error":        "❌ Не удалось получить прогноз. Попробуйте позже.",
		"ask_crop_name_first":  "🌱 Какая культура? Напишите название (например: томат).",
		"send_photo_now":       "📸 Теперь отправьте фото листа.",
		"report_prompt":        "🛠 Опишите проблему, и я передам её дальше.",
		"report_success":       "✅ Спасибо, ваше сообщение сохранено.",
		"ask_question_prompt":  "❓ Напишите ваш вопрос о сельском хозяйстве.",
		"topic_not_allowed":    "❌ Я отвечаю только на вопросы о сельском хозяйстве.",
		"photo_analyzing":      "⏳ Анализирую фото, подождите...",
		"please_type_crop":     "🌱 Сначала напишите название культуры, затем отправьте фото.",
		"not_leaf":             "❌ Это не похоже на лист растения. Пришлите фото листа.",
		"not_valid_image":      "❌ Это не похоже на корректное изображение. Пришлите другое фото.",
		"access_denied":        "🚫 Доступ запрещён. Обратитесь к администратору.",
		"general_error":        "❌ Произошла ошибка. Попробуйте позже.",
		"weather_title":        "Прогноз на %d дней:",
		"diagnosis_crop":       "Растение",
		"diagnosis_disease":    "Болезнь",
		"diagnosis_confidence": "Уверенность",
		"history_title":        "Ваши последние диагнозы:",
		"history_empty":        "Диагнозов пока нет.",
	},
}
