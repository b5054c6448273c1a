package domain

import "strings"

// Category is one member of the closed set of fallback pattern classes.
type Category string

const (
	CategoryCommaSeparated     Category = "comma-separated"
	CategoryPipeSeparated      Category = "pipe-separated"
	CategoryTabSeparated       Category = "tab-separated"
	CategorySemicolonSeparated Category = "semicolon-separated"
	CategoryItemList           Category = "item-list"
	CategoryEmail              Category = "email"
	CategoryPhone              Category = "phone"
	CategoryURL                Category = "url"
	CategoryIPAddress          Category = "ip-address"
	CategoryCreditCard         Category = "credit-card"
	CategorySSN                Category = "ssn"
	CategoryHexColor           Category = "hex-color"
	CategoryDate               Category = "date"
	CategoryNumber             Category = "number"
	CategoryWord               Category = "word"
	CategoryDefault            Category = "default"
)

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}

// predicate tests an already lower-cased description.
type predicate func(text string) bool

type rule struct {
	match    predicate
	category Category
}

func has(word string) predicate {
	return func(text string) bool { return strings.Contains(text, word) }
}

func anyOf(ps ...predicate) predicate {
	return func(text string) bool {
		for _, p := range ps {
			if p(text) {
				return true
			}
		}
		return false
	}
}

func allOf(ps ...predicate) predicate {
	return func(text string) bool {
		for _, p := range ps {
			if !p(text) {
				return false
			}
		}
		return true
	}
}

var delimited = anyOf(has("separated"), has("delimited"))

// rules are evaluated top to bottom; the first match wins.
var rules = []rule{
	{allOf(has("comma"), delimited), CategoryCommaSeparated},
	{allOf(has("pipe"), delimited), CategoryPipeSeparated},
	{allOf(has("tab"), delimited), CategoryTabSeparated},
	{allOf(has("semicolon"), delimited), CategorySemicolonSeparated},
	{allOf(has("list"), has("item")), CategoryItemList},
	{has("email"), CategoryEmail},
	{has("phone"), CategoryPhone},
	{has("url"), CategoryURL},
	{anyOf(has("ip address"), has("ipv4")), CategoryIPAddress},
	{anyOf(has("credit card"), has("card number")), CategoryCreditCard},
	{anyOf(has("social security"), has("ssn")), CategorySSN},
	{allOf(has("hex"), anyOf(has("color"), has("colour"))), CategoryHexColor},
	{anyOf(has("number"), has("digit")), CategoryNumber},
	{has("date"), CategoryDate},
	{has("word"), CategoryWord},
}

// Classify maps a free-text description to a Category.
func Classify(description string) Category {
	text := strings.ToLower(description)
	for _, r := range rules {
		if r.match(text) {
			return r.category
		}
	}
	return CategoryDefault
}

// Categories lists every category in classification order, Default last.
func Categories() []Category {
	out := make([]Category, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.category)
	}
	return append(out, CategoryDefault)
}
