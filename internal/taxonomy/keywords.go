package taxonomy

// Keywords maps each category to the substrings that characterize it in
// short spoken utterances. Matching is substring-based over lower-cased text.
type Keywords map[string][]string

// builtinKeywords is the v1 table shipped with the binary. An xlsx asset can
// override it at startup (see LoadKeywordsXLSX) so keyword tuning needs no
// rebuild.
var builtinKeywords = Keywords{
	"Food & Drinks": {
		"food", "restaurant", "meal", "lunch", "dinner", "breakfast", "eat",
		"pizza", "burger", "coffee", "drink", "snack", "tea", "beverage",
		"grocery", "groceries", "delivery",
	},
	"Transport": {
		"transport", "taxi", "bus", "train", "fuel", "petrol", "uber", "lyft",
		"metro", "parking", "ride", "auto", "flight", "trip", "cab",
	},
	"Utilities": {
		"electricity", "electric", "water bill", "internet", "wifi", "utility",
		"mobile recharge", "heating", "broadband", "cylinder",
	},
	"Shopping": {
		"shopping", "store", "buy", "purchase", "market", "mall", "clothes",
		"shirt", "amazon", "flipkart", "bag", "shoes", "dress", "bought",
		"clothing",
	},
	"Electronics & Gadgets": {
		"electronics", "gadget", "laptop", "computer", "tablet", "headphones",
		"camera", "smartphone", "tech", "device", "charger",
	},
	"Healthcare": {
		"doctor", "medicine", "hospital", "pharmacy", "health", "medical",
		"dentist", "clinic", "checkup",
	},
	"Education": {
		"book", "course", "school", "education", "tuition", "study",
		"university", "college", "exam", "supplies",
	},
	"Rent": {
		"rent", "rental", "lease", "apartment", "landlord", "housing",
	},
	"Bills": {
		"bill", "bills", "invoice", "subscription", "membership", "fee",
		"installment", "emi",
	},
	"Entertainment": {
		"movie", "cinema", "game", "entertainment", "party", "concert",
		"netflix", "show", "ticket", "theater",
	},
	"Investments": {
		"investment", "stock", "mutual fund", "shares", "crypto", "deposit",
	},
	"Personal Care": {
		"haircut", "salon", "spa", "cosmetics", "grooming", "barber",
	},
	"Family & Kids": {
		"kids", "children", "baby", "daycare", "toys", "family",
	},
	"Charity & Donations": {
		"donation", "charity", "donate", "zakat", "tithe",
	},
}

// DefaultKeywords returns a copy of the built-in v1 keyword table.
func DefaultKeywords() Keywords {
	out := make(Keywords, len(builtinKeywords))
	for cat, words := range builtinKeywords {
		cp := make([]string, len(words))
		copy(cp, words)
		out[cat] = cp
	}
	return out
}
