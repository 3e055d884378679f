package validators

import (
	"net/http/httptest"
	"testing"

	"github.com/openhouselabs/openhouse-backend/pkg/enums"
	pkgerrors "github.com/openhouselabs/openhouse-backend/pkg/errors"
)

func TestParseIDValid(t *testing.T) {
	id, err := ParseID("a3bb189e-8bf9-3888-9912-ace4e6543002", "listing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "a3bb189e-8bf9-3888-9912-ace4e6543002" {
		t.Fatalf("unexpected id %s", id)
	}
}

func TestParseIDInvalid(t *testing.T) {
	_, err := ParseID("not-a-uuid", "listing")
	if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidID) {
		t.Fatalf("expected invalid id code, got %v", err)
	}
	typed := pkgerrors.As(err)
	if typed.Message() != "Invalid listing ID format" {
		t.Fatalf("unexpected message %q", typed.Message())
	}

	_, err = ParseID("123", "showing")
	if typed := pkgerrors.As(err); typed == nil || typed.Message() != "Invalid showing ID format" {
		t.Fatalf("expected showing message, got %v", err)
	}
}

func TestParseListingQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/listings", nil)
	parsed, err := ParseListingQuery(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.SortColumn != "created_at" || !parsed.SortDesc {
		t.Fatalf("expected newest-first default sort, got %s desc=%v", parsed.SortColumn, parsed.SortDesc)
	}
	if parsed.Page.Page != 1 || parsed.Page.Limit != 10 {
		t.Fatalf("unexpected pagination defaults %+v", parsed.Page)
	}
	if parsed.MinPrice != nil || parsed.Status != nil || parsed.ZipCode != "" {
		t.Fatalf("expected no filters, got %+v", parsed)
	}
}

func TestParseListingQueryFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/listings?minPrice=100000&maxPrice=500000&minSquareFeet=900&zipCode=78701&status=active&sortBy=price&order=asc&page=2&limit=25", nil)
	parsed, err := ParseListingQuery(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *parsed.MinPrice != 100000 || *parsed.MaxPrice != 500000 {
		t.Fatalf("unexpected price range %v-%v", *parsed.MinPrice, *parsed.MaxPrice)
	}
	if *parsed.MinSquareFeet != 900 || parsed.MaxSquareFeet != nil {
		t.Fatalf("unexpected sqft filters")
	}
	if parsed.ZipCode != "78701" {
		t.Fatalf("unexpected zip %q", parsed.ZipCode)
	}
	if *parsed.Status != enums.ListingStatusActive {
		t.Fatalf("unexpected status %v", *parsed.Status)
	}
	if parsed.SortColumn != "price" || parsed.SortDesc {
		t.Fatalf("unexpected sort %s desc=%v", parsed.SortColumn, parsed.SortDesc)
	}
	if parsed.Page.Page != 2 || parsed.Page.Limit != 25 {
		t.Fatalf("unexpected pagination %+v", parsed.Page)
	}
}

func TestParseListingQueryNumericOrder(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/listings?order=-1", nil)
	parsed, err := ParseListingQuery(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.SortDesc {
		t.Fatal("order=-1 should sort descending")
	}

	r = httptest.NewRequest("GET", "/api/listings?order=1", nil)
	parsed, err = ParseListingQuery(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.SortDesc {
		t.Fatal("order=1 should sort ascending")
	}
}

func TestParseListingQueryZipPlusFour(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/listings?zipCode=78701-1234", nil)
	parsed, err := ParseListingQuery(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.ZipCode != "78701-1234" {
		t.Fatalf("unexpected zip %q", parsed.ZipCode)
	}
}

func TestParseListingQueryInvalid(t *testing.T) {
	cases := map[string]struct {
		query string
		field string
		want  string
	}{
		"non-numeric price": {"minPrice=abc", "minPrice", "minPrice must be a valid number"},
		"negative price":    {"minPrice=-5", "minPrice", "minPrice must be at least 0"},
		"inverted price":    {"minPrice=500&maxPrice=100", "minPrice", "minPrice cannot be greater than maxPrice"},
		"inverted sqft":     {"minSquareFeet=900&maxSquareFeet=100", "minSquareFeet", "minSquareFeet cannot be greater than maxSquareFeet"},
		"bad zip":           {"zipCode=1234", "zipCode", "zipCode must be a 5-digit ZIP code"},
		"bad status":        {"status=archived", "status", "status must be one of: active, pending, sold, inactive"},
		"bad sort":          {"sortBy=email", "sortBy", "sortBy must be one of: price, squareFeet, createdAt, updatedAt"},
		"bad order":         {"order=upward", "order", "order must be one of: asc, desc"},
		"zero page":         {"page=0", "page", "page must be at least 1"},
		"huge limit":        {"limit=500", "limit", "limit must not exceed 100"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/listings?"+tc.query, nil)
			_, err := ParseListingQuery(r)
			if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidQuery) {
				t.Fatalf("expected invalid query code, got %v", err)
			}
			typed := pkgerrors.As(err)
			if typed.Message() != "Invalid query parameters" {
				t.Fatalf("unexpected message %q", typed.Message())
			}
			// A single failing parameter surfaces its complaint as the reason.
			if typed.Reason() != tc.want {
				t.Fatalf("expected reason %q, got %q", tc.want, typed.Reason())
			}
			details, ok := typed.Details().(map[string]string)
			if !ok {
				t.Fatalf("expected details map, got %T", typed.Details())
			}
			if details[tc.field] != tc.want {
				t.Fatalf("expected %q for %s, got %q", tc.want, tc.field, details[tc.field])
			}
		})
	}
}

func TestParseListingQueryCollectsAllErrors(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/listings?minPrice=abc&zipCode=x&page=0", nil)
	_, err := ParseListingQuery(r)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected tagged error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if len(details) != 3 {
		t.Fatalf("expected 3 problems reported, got %d: %v", len(details), details)
	}
	if typed.Reason() != "One or more query parameters are invalid" {
		t.Fatalf("multiple failures should keep the generic reason, got %q", typed.Reason())
	}
}

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/showings", nil)
	page, err := ParsePagination(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 || page.Limit != 10 {
		t.Fatalf("unexpected defaults %+v", page)
	}
}
