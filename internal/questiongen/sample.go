package questiongen

import "encoding/json"

// sampleCandidates is what the offline "mock" provider answers with. The
// topic is ignored, so repeated runs are eventually all duplicates.
var sampleCandidates = []Candidate{
	{
		Text:        "Which battle in 1187 led to Saladin's recapture of Jerusalem?",
		Choices:     []string{"Hattin", "Ain Jalut", "Manzikert", "Yarmouk"},
		Answer:      "Hattin",
		Explanation: "Victory at Hattin broke the crusader field army.",
	},
	{
		Text:        "Which Mongol ruler sacked Baghdad in 1258?",
		Choices:     []string{"Hulagu", "Genghis", "Ogedei", "Kublai"},
		Answer:      "Hulagu",
		Explanation: "Hulagu's army ended the Abbasid caliphate in Baghdad.",
	},
	{
		Text:        "The Umayyad caliphs ruled from which city?",
		Choices:     []string{"Damascus", "Baghdad", "Medina", "Cairo"},
		Answer:      "Damascus",
		Explanation: "Mu'awiya made Damascus the Umayyad capital.",
	},
	{
		Text:        "Which city did the Abbasids found as their capital in 762?",
		Choices:     []string{"Baghdad", "Samarra", "Kufa", "Basra"},
		Answer:      "Baghdad",
		Explanation: "Al-Mansur built the Round City of Baghdad.",
	},
	{
		Text:        "Where did the Mamluks defeat the Mongols in 1260?",
		Choices:     []string{"Ain Jalut", "Hattin", "Talas", "Nahavand"},
		Answer:      "Ain Jalut",
		Explanation: "Baybars and Qutuz halted the Mongol advance into Egypt.",
	},
	{
		Text:        "In which year did Constantinople fall to the Ottomans?",
		Choices:     []string{"1453", "1204", "1389", "1517"},
		Answer:      "1453",
		Explanation: "Mehmed II took the city on 29 May 1453.",
	},
	{
		Text:        "Which dynasty built the Alhambra in Granada?",
		Choices:     []string{"Nasrid", "Almohad", "Umayyad", "Almoravid"},
		Answer:      "Nasrid",
		Explanation: "The Nasrids ruled Granada until 1492.",
	},
	{
		Text:        "Who led the Muslim conquest of Iberia in 711?",
		Choices:     []string{"Tariq ibn Ziyad", "Musa ibn Nusayr", "Abd al-Rahman I", "Uqba ibn Nafi"},
		Answer:      "Tariq ibn Ziyad",
		Explanation: "Gibraltar takes its name from Jabal Tariq.",
	},
	{
		Text:        "Which Fatimid city was founded in 969?",
		Choices:     []string{"Cairo", "Fez", "Kairouan", "Mahdia"},
		Answer:      "Cairo",
		Explanation: "Jawhar al-Siqilli founded al-Qahira for the Fatimids.",
	},
	{
		Text:        "The Battle of Talas in 751 was fought against which empire?",
		Choices:     []string{"Tang China", "Byzantium", "Sasanian Persia", "Khazar Khaganate"},
		Answer:      "Tang China",
		Explanation: "The Abbasids and Tang met near the Talas river in Central Asia.",
	},
	{
		Text:        "Which Seljuk victory in 1071 opened Anatolia to Turkish settlement?",
		Choices:     []string{"Manzikert", "Myriokephalon", "Dorylaeum", "Kosovo"},
		Answer:      "Manzikert",
		Explanation: "Alp Arslan captured Emperor Romanos IV Diogenes.",
	},
	{
		Text:        "Who wrote the Muqaddimah?",
		Choices:     []string{"Ibn Khaldun", "Ibn Battuta", "Al-Tabari", "Ibn Sina"},
		Answer:      "Ibn Khaldun",
		Explanation: "Ibn Khaldun finished it in 1377 as the preface to his world history.",
	},
}

// SampleBatch is a fixed batch in the shape of BatchSchema, served by the
// offline provider.
func SampleBatch() json.RawMessage {
	// Marshalling plain strings cannot fail.
	b, _ := json.Marshal(batchOutput{Questions: sampleCandidates})
	return b
}
