package extract

import (
	"math"
	"testing"
	"time"

	"github.com/huangsam/spendwrap/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "dollar with thousands", input: "$1,234.56", want: "1234.56"},
		{name: "plain", input: "1234.56", want: "1234.56"},
		{name: "empty", input: "", want: "0"},
		{name: "garbage", input: "n/a", want: "0"},
		{name: "negative refund", input: "-$5.25", want: "-5.25"},
		{name: "leading dot", input: ".5", want: "0.5"},
		{name: "trailing dot", input: "7.", want: "7"},
		{name: "trailing noise ignored", input: "10.00-3", want: "10"},
		{name: "lone minus", input: "-", want: "0"},
		{name: "currency code", input: "USD 10", want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCurrency(tt.input)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, int64(3), ParseQuantity("3"))
	assert.Equal(t, int64(3), ParseQuantity(" 3 items"))
	assert.Equal(t, int64(2), ParseQuantity("2.9"))
	assert.Equal(t, int64(1), ParseQuantity(""))
	assert.Equal(t, int64(1), ParseQuantity("several"))
	assert.Equal(t, int64(0), ParseQuantity("0"))
	assert.Equal(t, int64(math.MaxInt64), ParseQuantity("99999999999999999999"))
	assert.Equal(t, int64(math.MinInt64), ParseQuantity("-99999999999999999999"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month time.Month
		day   int
	}{
		{"2025-03-15", 2025, time.March, 15},
		{"2025-03-15T10:20:30Z", 2025, time.March, 15},
		{"2025-03-15T23:59:59.123-08:00", 2025, time.March, 15},
		{"2025-03-15 08:00:00", 2025, time.March, 15},
		{"03/15/2025", 2025, time.March, 15},
		{"3/5/2025", 2025, time.March, 5},
		{"March 15, 2025", 2025, time.March, 15},
		{"Mar 15, 2025", 2025, time.March, 15},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := ParseDate(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.year, d.Year())
			assert.Equal(t, tt.month, d.Month())
			assert.Equal(t, tt.day, d.Day())
		})
	}

	_, ok := ParseDate("not a date")
	assert.False(t, ok)
}

func TestAmountFallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		record schema.RawRecord
		want   string
	}{
		{
			name:   "total owed wins",
			record: schema.RawRecord{"Total Owed": "$4.00", "Item Total": "$9.00", "Unit Price": "1.00"},
			want:   "4",
		},
		{
			name:   "zero total owed falls through",
			record: schema.RawRecord{"Total Owed": "$0.00", "Item Total": "$9.00"},
			want:   "9",
		},
		{
			name:   "alternate item total",
			record: schema.RawRecord{"ItemTotal": "$10.00"},
			want:   "10",
		},
		{
			name:   "unit price times quantity",
			record: schema.RawRecord{"Unit Price": "5.00", "Quantity": "3"},
			want:   "15",
		},
		{
			name:   "purchase price preferred over price",
			record: schema.RawRecord{"Purchase Price Per Unit": "2.50", "Price": "99", "Quantity": "2"},
			want:   "5",
		},
		{
			name:   "bad quantity defaults to one",
			record: schema.RawRecord{"Price": "$7.25", "Quantity": "abc"},
			want:   "7.25",
		},
		{
			name:   "nothing usable",
			record: schema.RawRecord{"Order Date": "2025-01-01"},
			want:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amount(tt.record)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestExtract(t *testing.T) {
	t.Run("item total with alternate date column", func(t *testing.T) {
		line, ok := Extract(schema.RawRecord{"OrderDate": "2025-03-15", "ItemTotal": "$10.00"}, 2025)
		require.True(t, ok)
		assert.Equal(t, "2025-03", schema.MonthKey(line.Date))
		assert.True(t, decimal.NewFromInt(10).Equal(line.Amount))
		assert.Empty(t, line.Title)
		assert.Empty(t, line.OrderID)
	})

	t.Run("unit price fallback", func(t *testing.T) {
		line, ok := Extract(schema.RawRecord{"Order Date": "2025-06-01", "Unit Price": "5.00", "Quantity": "3"}, 2025)
		require.True(t, ok)
		assert.True(t, decimal.NewFromInt(15).Equal(line.Amount))
	})

	t.Run("title priority and fields", func(t *testing.T) {
		line, ok := Extract(schema.RawRecord{
			"Order Date":   "2025-02-02",
			"Total Owed":   "$3.00",
			"Item Name":    "Second",
			"Product Name": "Third",
			"Order ID":     "111-222",
			"Category":     "Books",
		}, 2025)
		require.True(t, ok)
		assert.Equal(t, "Second", line.Title)
		assert.Equal(t, "111-222", line.OrderID)
		assert.Equal(t, "Books", line.Category)
	})

	t.Run("skips", func(t *testing.T) {
		skipped := []schema.RawRecord{
			{"Item Total": "$10.00"},
			{"Order Date": "garbage", "Item Total": "$10.00"},
			{"Order Date": "2024-12-31", "Item Total": "$10.00"},
			{"Order Date": "2025-01-01", "Item Total": "$0.00"},
			{"Order Date": "2025-01-01", "Unit Price": "4.00", "Quantity": "0"},
		}
		for _, rec := range skipped {
			_, ok := Extract(rec, 2025)
			assert.False(t, ok, "record %v should be skipped", rec)
		}
	})

	t.Run("other target year", func(t *testing.T) {
		_, ok := Extract(schema.RawRecord{"Order Date": "2024-12-31", "Item Total": "$10.00"}, 2024)
		assert.True(t, ok)
	})
}
