// Package extract resolves canonical order-line fields from heterogeneous export rows.
package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/spendwrap/schema"
	"github.com/shopspring/decimal"
)

// Candidate column names for each logical field, in priority order.
var (
	DateFields      = []string{"Order Date", "OrderDate"}
	TitleFields     = []string{"Title", "Item Name", "Product Name"}
	OrderIDFields   = []string{"Order ID"}
	CategoryFields  = []string{"Category"}
	TotalOwedFields = []string{"Total Owed"}
	ItemTotalFields = []string{"Item Total", "ItemTotal"}
	UnitPriceFields = []string{"Purchase Price Per Unit", "Price", "Unit Price"}
	QuantityFields  = []string{"Quantity"}
)

// dateLayouts are tried in order until one parses.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

var (
	currencyStrip = regexp.MustCompile(`[^0-9.\-]+`)
	leadingNumber = regexp.MustCompile(`^-?(?:\d+(?:\.\d*)?|\.\d+)`)
	leadingInt    = regexp.MustCompile(`^[+-]?\d+`)
)

// FirstValue returns the first non-blank value among keys, in order.
func FirstValue(record schema.RawRecord, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := record[k]; ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// ParseCurrency strips everything but digits, '.' and '-' and parses the longest
// leading number. Anything unparseable is zero.
//
// Examples:
//
//	ParseCurrency("$1,234.56") -> 1234.56
//	ParseCurrency("USD 10")    -> 10
//	ParseCurrency("")          -> 0
//	ParseCurrency("n/a")       -> 0
func ParseCurrency(value string) decimal.Decimal {
	clean := currencyStrip.ReplaceAllString(value, "")
	num := leadingNumber.FindString(clean)
	num = strings.TrimSuffix(num, ".")
	if num == "" || num == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseQuantity reads the leading integer of value. Absent or non-numeric
// quantities are 1; out-of-range quantities clamp to the int64 bounds.
func ParseQuantity(value string) int64 {
	m := leadingInt.FindString(strings.TrimSpace(value))
	if m == "" {
		return 1
	}
	q, err := strconv.ParseInt(m, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		// ParseInt clamps to the int64 bounds
		return q
	}
	if err != nil {
		return 1
	}
	return q
}

// ParseDate parses value as a calendar date using the supported layouts.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Amount recovers the paid amount of a line through the fallback chain:
// total owed, then item total, then unit price times quantity. Each step is
// only consulted when the previous one produced exactly zero.
func Amount(record schema.RawRecord) decimal.Decimal {
	owed, _ := FirstValue(record, TotalOwedFields)
	amount := ParseCurrency(owed)
	if !amount.IsZero() {
		return amount
	}

	itemTotal, _ := FirstValue(record, ItemTotalFields)
	amount = ParseCurrency(itemTotal)
	if !amount.IsZero() {
		return amount
	}

	price, _ := FirstValue(record, UnitPriceFields)
	qty, _ := FirstValue(record, QuantityFields)
	return ParseCurrency(price).Mul(decimal.NewFromInt(ParseQuantity(qty)))
}

// Extract resolves one record into an ExtractedLine. The second return value is
// false when the record must be skipped: no parseable date, a date outside
// targetYear, or a zero amount.
func Extract(record schema.RawRecord, targetYear int) (schema.ExtractedLine, bool) {
	dateStr, ok := FirstValue(record, DateFields)
	if !ok {
		return schema.ExtractedLine{}, false
	}
	amount := Amount(record)
	if amount.IsZero() {
		return schema.ExtractedLine{}, false
	}
	date, ok := ParseDate(dateStr)
	if !ok || date.Year() != targetYear {
		return schema.ExtractedLine{}, false
	}

	title, _ := FirstValue(record, TitleFields)
	orderID, _ := FirstValue(record, OrderIDFields)
	category, _ := FirstValue(record, CategoryFields)

	return schema.ExtractedLine{
		Date:     date,
		Title:    title,
		OrderID:  orderID,
		Category: category,
		Amount:   amount,
	}, true
}
