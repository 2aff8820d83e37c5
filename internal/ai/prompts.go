package ai

import (
	"fmt"
	"strings"

	"github.com/edgard/agrobot/internal/i18n"
)

const leafCheckPrompt = "Determine if this image contains a plant, leaf, crop, or tree. Answer only: YES or NO."

const topicGuardPrompt = `Determine if the question below is related to AGRICULTURE:
- crops, plants, soil, irrigation
- diseases, pests, fertilizers, pesticides
- weather for farming
- farming techniques

Respond ONLY with "YES" or "NO".

Question: %s`

const cropMatchSystem = `You normalize crop names.
Allowed crops: %s

RULES:
- User may type in any language
- Fix spelling mistakes
- Return the EXACT match from the allowed list
- If no match, return NONE`

const rewriteSystem = "You rewrite the user's text cleanly and clearly in %s. Keep it short. Keep agricultural context. No disclaimers."

// fieldLabels carries the localized section headings used in diagnosis
// prompts so the model's structured output matches the interface language.
var fieldLabels = map[i18n.Lang]map[string]string{
	i18n.LangEnglish: {
		"disease": "Disease", "crop": "Crop", "confidence": "Confidence",
		"symptoms": "Symptoms", "treatment": "Treatment", "prevention": "Prevention", "causes": "Causes",
	},
	i18n.LangUzbekLatin: {
		"disease": "Kasallik", "crop": "O‘simlik", "confidence": "Ishonchlilik",
		"symptoms": "Belgilar", "treatment": "Davolash", "prevention": "Oldini olish", "causes": "Sabablar",
	},
	i18n.LangUzbekCyrillic: {
		"disease": "Касаллик", "crop": "Ўсимлик", "confidence": "Ишончлилик",
		"symptoms": "Белгилар", "treatment": "Даволаш", "prevention": "Олдини олиш", "causes": "Сабаблар",
	},
	i18n.LangRussian: {
		"disease": "Болезнь", "crop": "Растение", "confidence": "Уверенность",
		"symptoms": "Симптомы", "treatment": "Лечение", "prevention": "Профилактика", "causes": "Причины",
	},
}

func fields(lang i18n.Lang) map[string]string {
	if f, ok := fieldLabels[lang]; ok {
		return f
	}
	return fieldLabels[i18n.LangEnglish]
}

func diagnoseSystem(lang i18n.Lang) string {
	f := fields(lang)
	return fmt.Sprintf(`You are an agricultural plant disease expert.

IMPORTANT:
- Respond ONLY in %s
- Follow the EXACT format below

FORMAT EXACTLY:

🌿 %s: <short name>

🔍 %s:
- symptom 1
- symptom 2
- symptom 3

🧪 %s:
- cause 1
- cause 2

💊 %s:
- treatment 1
- treatment 2
- treatment 3

🛡 %s:
- prevention 1
- prevention 2`,
		i18n.Name(lang), f["disease"], f["symptoms"], f["causes"], f["treatment"], f["prevention"])
}

func explainPrompt(crop, disease string, confidence float64, lang i18n.Lang) (system, user string) {
	f := fields(lang)
	system = fmt.Sprintf("You are a crop disease expert. Respond only in %s. Format clearly using emojis. No disclaimers. Keep structure exactly.", i18n.Name(lang))
	user = fmt.Sprintf(`A local AI model detected:

Crop: %s
Disease: %s
Confidence: %.2f%%

Your tasks:
- Explain the disease in 1-2 simple sentences
- Write symptoms, treatment, and prevention
- Keep the structure exactly as shown below
- Translate everything into %s

REQUIRED FORMAT EXACTLY:

🌿 %s: %s
🌱 %s: %s
📊 %s: %.2f%%

🔍 %s:
- ...
- ...

💊 %s:
- ...
- ...

🛡 %s:
- ...`,
		crop, disease, confidence, i18n.Name(lang),
		f["disease"], disease, f["crop"], crop, f["confidence"], confidence,
		f["symptoms"], f["treatment"], f["prevention"])
	return system, user
}

func cropMatchPrompt(allowed []string) string {
	return fmt.Sprintf(cropMatchSystem, strings.Join(allowed, ", "))
}
