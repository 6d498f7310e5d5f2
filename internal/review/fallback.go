package review

import "strings"

// businessPlaceholder marks where the business name is spliced into a curated
// fallback text.
const businessPlaceholder = "{business}"

// fallbackPools holds curated reviews keyed by rating bucket then language.
// Only buckets 4 and 5 are curated; lower ratings resolve to bucket 4. Every
// supported language has a non-empty pool for both buckets.
var fallbackPools = map[int]map[string][]string{
	4: {
		LanguageEnglish: {
			"Had a good experience at {business}. The team was attentive and the whole process felt smooth from start to finish.",
			"Visited {business} recently and came away satisfied. Friendly staff and solid quality, would happily return.",
			"{business} delivered what they promised. Service was prompt and the people there clearly care about their customers.",
			"Pleasant visit to {business}. Everything was handled professionally and I left with a good impression.",
		},
		LanguageHindi: {
			"{business} mein accha anubhav raha. Staff vinamra tha aur kaam samay par hua, main santusht hoon.",
			"{business} ki service achhi lagi. Log madadgar the aur quality bhi theek thi, dobara aana chahunga.",
			"Humne {business} se seva li aur anubhav accha raha. Team ne poora dhyan rakha aur kaam saaf-suthra hua.",
		},
		LanguageGujarati: {
			"{business} ma saro anubhav rahyo. Staff madadgar hato ane kaam samaysar thayu, hu santusht chhu.",
			"{business} ni seva sari lagi. Loko namra hata ane quality pan sari hati, farithi avish.",
			"Ame {business} ni mulakat lidhi ane anubhav saro rahyo. Team e dhyan rakhyu ane badhu vyavasthit hatu.",
		},
	},
	5: {
		LanguageEnglish: {
			"Wonderful experience at {business}. The staff went out of their way to help and every detail was taken care of.",
			"{business} exceeded my expectations. Genuinely warm service and excellent quality, I recommend them without hesitation.",
			"Could not have asked for more from {business}. Professional, welcoming and thorough, easily the best around.",
			"Every visit to {business} has been great, but this one stood out. Attentive people and truly impressive work.",
		},
		LanguageHindi: {
			"{business} mein shaandaar anubhav raha. Team ne har cheez ka khayal rakha aur seva dil se di, zaroor recommend karunga.",
			"{business} ne umeed se badhkar kaam kiya. Log bahut acche hain aur quality lajawab hai, main bahut khush hoon.",
			"{business} ki seva behtareen rahi. Har baat ka dhyan rakha gaya aur anubhav yaadgar bana, dhanyavaad poori team ko.",
		},
		LanguageGujarati: {
			"{business} ma khub j saro anubhav rahyo. Team e dil thi seva api ane dareik vaat nu dhyan rakhyu, hu jarur recommend karish.",
			"{business} e apeksha karta vadhare saru kam karyu. Loko khub sara chhe ane quality uttam chhe, hu khub khush chhu.",
			"{business} ni seva shresth rahi. Dareik vigat nu dhyan rakhvama avyu ane anubhav yaadgar banyo, aabhar aakhi team no.",
		},
	},
}

// fallbackBucket maps a star rating to a curated pool bucket. Ratings without
// their own pool borrow the bucket-4 texts.
func fallbackBucket(rating int) int {
	if rating >= 5 {
		return 5
	}
	return 4
}

// Fallback returns a curated review for the rating and language, with the
// business name spliced in. The pick is uniform over the resolved pool; the
// pool is intentionally small, so repeats across calls are expected. Never
// returns an empty string.
func Fallback(rating int, businessName, language string, rng *Rand) string {
	pool := fallbackPools[fallbackBucket(clampRating(rating))][resolveLanguage(language)]
	text := pool[rng.Intn(len(pool))]
	return strings.ReplaceAll(text, businessPlaceholder, businessName)
}
