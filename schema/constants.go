package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and run tracking.
	DatabaseBackend string

	// Section identifies one block of a rendered summary.
	Section string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Summary sections, in the order they are rendered.
const (
	OverviewSection     Section = "overview"
	CategorySection     Section = "category"
	ItemCountSection    Section = "item_count"
	ItemSpendSection    Section = "item_spend"
	MonthSection        Section = "month"
	WeekdaySection      Section = "weekday"
	ClassifiedSection   Section = "classified"
	CategoryRuleSection Section = "category_rule"
)

// Fixed limits of the analytics engine.
const (
	DefaultTargetYear  = 2025
	MinTargetYear      = 1970
	MaxTargetYear      = 9999
	TopCategoriesLimit = 5
	TopItemsLimit      = 10
	TitleKeyMaxRunes   = 50
	TitleKeyEllipsis   = "..."
)

// Category labels produced by the keyword classifier.
const (
	Groceries      = "Groceries"
	Electronics    = "Electronics"
	HomeHousehold  = "Home & Household"
	HealthBeauty   = "Health & Beauty"
	BooksMedia     = "Books & Media"
	Clothing       = "Clothing"
	BabyKids       = "Baby & Kids"
	PetSupplies    = "Pet Supplies"
	OfficeSchool   = "Office & School"
	OtherCategory  = "Other"
	Uncategorized  = "Uncategorized"
	NoCategoryName = ""
)

// AllSections returns the summary sections in render order.
var AllSections = []Section{
	OverviewSection,
	CategorySection,
	ItemCountSection,
	ItemSpendSection,
	MonthSection,
	WeekdaySection,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ExcludedFromTotals reports whether a category never receives category spend.
func ExcludedFromTotals(category string) bool {
	switch category {
	case NoCategoryName, OtherCategory, Uncategorized:
		return true
	default:
		return false
	}
}
