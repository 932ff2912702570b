package classify

import (
	"testing"

	"github.com/huangsam/spendwrap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		explicit string
		want     string
	}{
		{name: "grocery produce", title: "Organic Avocado, 2 ct", want: schema.Groceries},
		{name: "electronics cable", title: "USB-C Charging Cable", want: schema.Electronics},
		{name: "case insensitive", title: "ORGANIC BANANAS", want: schema.Groceries},
		{name: "books", title: "Paperback Novel", want: schema.BooksMedia},
		{name: "pet supplies", title: "Cat Litter", want: schema.PetSupplies},
		{name: "office", title: "Blue Ballpoint Pen Set", want: schema.OfficeSchool},
		{name: "earlier rule wins on overlap", title: "Dog Food", want: schema.Groceries},
		{name: "no match", title: "Zzz", want: schema.OtherCategory},
		{name: "no title", title: "", want: schema.OtherCategory},
		{name: "explicit passes through", title: "USB-C Charging Cable", explicit: "Books", want: "Books"},
		{name: "explicit is not validated", title: "", explicit: "Garden", want: "Garden"},
		{name: "blank explicit ignored", title: "Organic Avocado, 2 ct", explicit: "  ", want: schema.Groceries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.title, tt.explicit))
		})
	}
}

func TestRulesOrder(t *testing.T) {
	got := Rules()
	require.Len(t, got, 9)

	want := []string{
		schema.Groceries,
		schema.Electronics,
		schema.HomeHousehold,
		schema.HealthBeauty,
		schema.BooksMedia,
		schema.Clothing,
		schema.BabyKids,
		schema.PetSupplies,
		schema.OfficeSchool,
	}
	for i, r := range got {
		assert.Equal(t, want[i], r.Category)
		assert.NotEmpty(t, r.Keywords)
	}
	assert.Equal(t, "organic", got[0].Keywords[0])
	assert.Equal(t, "oz", got[0].Keywords[len(got[0].Keywords)-1])
}

func TestRulesReturnsCopy(t *testing.T) {
	got := Rules()
	got[0].Keywords[0] = "mutated"
	got[1].Category = "Mutated"

	fresh := Rules()
	assert.Equal(t, "organic", fresh[0].Keywords[0])
	assert.Equal(t, schema.Electronics, fresh[1].Category)
}

func TestDescribe(t *testing.T) {
	d := Describe("USB-C Charging Cable", "")
	assert.Equal(t, schema.Electronics, d.Category)
	assert.False(t, d.Explicit)

	d = Describe("anything", "Garden")
	assert.Equal(t, "Garden", d.Category)
	assert.True(t, d.Explicit)
}

func TestEveryRuleIsReachable(t *testing.T) {
	// Each category must win for at least one of its own keywords.
	for _, r := range Rules() {
		reachable := false
		for _, kw := range r.Keywords {
			if Infer(kw) == r.Category {
				reachable = true
				break
			}
		}
		assert.True(t, reachable, "category %s is shadowed by earlier rules", r.Category)
	}
}
