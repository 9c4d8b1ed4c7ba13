package modelrest_test

import (
	"errors"
	"time"

	v "github.com/fadine/modelrest"
)

// ============ Test entities ============

type testPost struct {
	v.Record `json:"-" model:"-"`

	ID    string `json:"id" model:"primary"`
	Title string `json:"title" model:"maxlength=200"`
}

type testProfile struct {
	v.Record `json:"-" model:"-"`

	ID  string `json:"id" model:"primary"`
	Bio string `json:"bio" model:"null"`
}

type testUser struct {
	v.Record `json:"-" model:"-"`

	ID        int       `json:"id" model:"primary"`
	Email     string    `json:"email" model:"unique,maxlength=120"`
	Active    bool      `json:"active" model:"default=false"`
	Role      string    `json:"role" model:"enum=admin|member,default=member"`
	Born      string    `json:"born" model:"type=date,null"`
	CreatedAt time.Time `json:"created_at" model:"default"`
	Nickname  *string   `json:"nickname"`
	OrgID     string    `json:"org_id" model:"null"`

	Posts   []*testPost  `json:"posts" model:"rel"`
	Profile *testProfile `json:"profile" model:"rel"`
}

// badEntity has a field with no semantic type mapping.
type badEntity struct {
	v.Record `json:"-" model:"-"`

	Data map[string]int `json:"data"`
}

// selfExportItem advertises the custom export capability.
type selfExportItem struct {
	Name string
	fail bool
}

func (s *selfExportItem) ExportData(_, _ []string) (map[string]any, error) {
	if s.fail {
		return nil, errors.New("custom export failed")
	}
	return map[string]any{"name": s.Name, "custom": true}, nil
}

// lookupNone is a lookup capability that never finds a match.
func lookupNone(string, any) (any, error) { return nil, nil }

func strptr(s string) *string { return &s }
