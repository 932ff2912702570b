// Package classify assigns spend categories to item titles by ordered keyword matching.
package classify

import (
	"strings"

	"github.com/huangsam/spendwrap/schema"
)

// Rule pairs a category with the substrings that select it.
type Rule struct {
	Category string
	Keywords []string
}

// rules is evaluated top to bottom and the first rule with a matching keyword wins.
// Keyword sets overlap ("food", "fish", "toy", "brush"), so the order is significant.
var rules = []Rule{
	{Category: schema.Groceries, Keywords: []string{
		"organic", "broccoli", "shallot", "lemon", "avocado", "blueberr", "strawberr", "banana", "apple", "orange",
		"tomato", "onion", "garlic", "pepper", "lettuce", "spinach", "carrot", "potato", "chicken", "beef",
		"pork", "salmon", "fish", "milk", "cheese", "yogurt", "butter", "egg", "bread", "rice",
		"pasta", "cereal", "coffee", "tea", "juice", "water", "soda", "snack", "cookie", "chip",
		"cracker", "nut", "fruit", "vegetable", "meat", "seafood", "frozen", "grocery", "food", "produce",
		"fresh", "whole foods", "amazon fresh", "paper bag fee", "1 each", "pint", "bunch", "lb", "oz",
	}},
	{Category: schema.Electronics, Keywords: []string{
		"cable", "charger", "adapter", "usb", "hdmi", "phone", "case", "screen", "battery", "headphone",
		"earphone", "earbud", "speaker", "bluetooth", "kindle", "echo", "alexa", "fire tv", "roku", "tablet",
		"laptop", "keyboard", "mouse", "monitor", "computer", "hard drive", "ssd", "memory", "electronic", "tech",
		"gaming", "controller", "nintendo", "playstation", "xbox",
	}},
	{Category: schema.HomeHousehold, Keywords: []string{
		"towel", "sheet", "pillow", "blanket", "curtain", "rug", "mat", "storage", "container", "basket",
		"organizer", "hook", "hanger", "cleaning", "soap", "detergent", "sponge", "brush", "mop", "vacuum",
		"trash", "bag", "tissue", "paper towel", "toilet paper", "napkin", "kitchen", "bathroom", "bedroom", "living",
		"home", "house", "furniture",
	}},
	{Category: schema.HealthBeauty, Keywords: []string{
		"shampoo", "conditioner", "lotion", "cream", "moisturizer", "sunscreen", "makeup", "cosmetic", "lipstick", "mascara",
		"foundation", "brush", "razor", "shaving", "toothpaste", "toothbrush", "floss", "mouthwash", "vitamin", "supplement",
		"medicine", "bandage", "first aid", "health", "beauty", "skincare", "haircare", "personal care", "deodorant", "perfume",
	}},
	{Category: schema.BooksMedia, Keywords: []string{
		"book", "novel", "paperback", "hardcover", "kindle edition", "ebook", "magazine", "comic", "manga", "audiobook",
		"dvd", "blu-ray", "cd", "vinyl",
	}},
	{Category: schema.Clothing, Keywords: []string{
		"shirt", "pants", "jeans", "dress", "skirt", "jacket", "coat", "sweater", "sock", "underwear",
		"bra", "shoe", "boot", "sandal", "sneaker", "hat", "cap", "scarf", "glove", "belt",
		"watch", "jewelry", "sunglasses", "clothing", "apparel", "wear", "fashion",
	}},
	{Category: schema.BabyKids, Keywords: []string{
		"baby", "diaper", "formula", "pacifier", "bottle", "stroller", "crib", "toy", "game", "puzzle",
		"lego", "doll", "action figure", "kids", "children",
	}},
	{Category: schema.PetSupplies, Keywords: []string{
		"dog", "cat", "pet", "food", "treat", "leash", "collar", "toy", "bed", "litter",
		"aquarium", "fish", "bird",
	}},
	{Category: schema.OfficeSchool, Keywords: []string{
		"pen", "pencil", "marker", "notebook", "paper", "folder", "binder", "tape", "stapler", "scissors",
		"glue", "envelope", "label", "office", "desk", "chair", "lamp", "calendar", "planner",
	}},
}

// Rules returns a copy of the ordered keyword table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Infer returns the category of the first rule with a keyword contained in the
// lower-cased title, or Other when nothing matches.
func Infer(title string) string {
	if title == "" {
		return schema.OtherCategory
	}
	lower := strings.ToLower(title)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return schema.OtherCategory
}

// Classify passes a non-blank explicit category through unchanged and otherwise
// infers one from the title.
func Classify(title, explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return Infer(title)
}

// Describe classifies a title and reports whether the explicit category was used.
func Describe(title, explicit string) schema.ClassifiedTitle {
	category := Classify(title, explicit)
	return schema.ClassifiedTitle{
		Title:    title,
		Category: category,
		Explicit: strings.TrimSpace(explicit) != "",
	}
}
