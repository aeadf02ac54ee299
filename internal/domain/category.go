package domain

type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "INCOME"
	CategoryKindExpense CategoryKind = "EXPENSE"
	CategoryKindBoth    CategoryKind = "BOTH"
)

// Lang is a supported display language for category names.
type Lang string

const (
	LangTurkish Lang = "tr"
	LangEnglish Lang = "en"
)

// Category buckets income/expense entries. HomeID is nil for the global
// default set shared by every home; per-home customs carry their home id.
// Names are kept in both supported languages at all times.
type Category struct {
	ID        int32        `json:"id"`
	HomeID    *int32       `json:"home_id,omitempty"`
	NameTr    string       `json:"name_tr"`
	NameEn    string       `json:"name_en"`
	Kind      CategoryKind `json:"kind"`
	Icon      string       `json:"icon"`
	Color     string       `json:"color"`
	IsDefault bool         `json:"is_default"`
	CreatedOn string       `json:"created_on"`
}

// Name returns the display name for the requested language.
func (c *Category) Name(lang Lang) string {
	if lang == LangTurkish {
		return c.NameTr
	}
	return c.NameEn
}

// Matches reports whether the category accepts entries of the given kind.
func (c *Category) Matches(kind EntryKind) bool {
	switch c.Kind {
	case CategoryKindBoth:
		return kind == EntryKindIncome || kind == EntryKindExpense
	case CategoryKindIncome:
		return kind == EntryKindIncome
	case CategoryKindExpense:
		return kind == EntryKindExpense
	}
	return false
}
