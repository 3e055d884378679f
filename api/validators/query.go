package validators

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/pkg/enums"
	pkgerrors "github.com/openhouselabs/openhouse-backend/pkg/errors"
	"github.com/openhouselabs/openhouse-backend/pkg/pagination"
)

var zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ParseID parses a path segment as a UUID. resource names the entity so the
// message reads "Invalid listing ID format" rather than a generic complaint.
func ParseID(raw, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeInvalidID, fmt.Sprintf("Invalid %s ID format", resource)).
			WithReason("The provided ID is not a valid UUID")
	}
	return id, nil
}

// ListingQuery carries the parsed filter, sort, and pagination parameters of
// a listing search. Nil pointers mean the filter was not supplied.
type ListingQuery struct {
	MinPrice      *float64
	MaxPrice      *float64
	MinSquareFeet *float64
	MaxSquareFeet *float64
	ZipCode       string
	Status        *enums.ListingStatus
	SortColumn    string
	SortDesc      bool
	Page          pagination.Params
}

// sortableColumns maps the public sort keys to their storage columns.
var sortableColumns = map[string]string{
	"price":      "price",
	"squareFeet": "square_feet",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// ParseListingQuery validates every recognized query parameter of a listing
// search, collecting all problems into one response rather than failing on
// the first.
func ParseListingQuery(r *http.Request) (*ListingQuery, error) {
	query := r.URL.Query()
	details := map[string]string{}

	parsed := &ListingQuery{
		SortColumn: "created_at",
		SortDesc:   true,
	}

	parsed.MinPrice = parseQueryFloat(query.Get("minPrice"), "minPrice", details)
	parsed.MaxPrice = parseQueryFloat(query.Get("maxPrice"), "maxPrice", details)
	parsed.MinSquareFeet = parseQueryFloat(query.Get("minSquareFeet"), "minSquareFeet", details)
	parsed.MaxSquareFeet = parseQueryFloat(query.Get("maxSquareFeet"), "maxSquareFeet", details)

	if parsed.MinPrice != nil && parsed.MaxPrice != nil && *parsed.MinPrice > *parsed.MaxPrice {
		details["minPrice"] = "minPrice cannot be greater than maxPrice"
	}
	if parsed.MinSquareFeet != nil && parsed.MaxSquareFeet != nil && *parsed.MinSquareFeet > *parsed.MaxSquareFeet {
		details["minSquareFeet"] = "minSquareFeet cannot be greater than maxSquareFeet"
	}

	if raw := strings.TrimSpace(query.Get("zipCode")); raw != "" {
		if !zipCodePattern.MatchString(raw) {
			details["zipCode"] = "zipCode must be a 5-digit ZIP code"
		} else {
			parsed.ZipCode = raw
		}
	}

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status, err := enums.ParseListingStatus(raw)
		if err != nil {
			details["status"] = fmt.Sprintf("status must be one of: %s", strings.Join(enums.ListingStatusValues(), ", "))
		} else {
			parsed.Status = &status
		}
	}

	if raw := strings.TrimSpace(query.Get("sortBy")); raw != "" {
		column, ok := sortableColumns[raw]
		if !ok {
			details["sortBy"] = "sortBy must be one of: price, squareFeet, createdAt, updatedAt"
		} else {
			parsed.SortColumn = column
		}
	}

	if raw := strings.TrimSpace(query.Get("order")); raw != "" {
		switch raw {
		case "asc", "1":
			parsed.SortDesc = false
		case "desc", "-1":
			parsed.SortDesc = true
		default:
			details["order"] = "order must be one of: asc, desc"
		}
	}

	page, err := ParsePagination(r)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			if pageDetails, ok := typed.Details().(map[string]string); ok {
				for k, v := range pageDetails {
					details[k] = v
				}
			}
		}
	} else {
		parsed.Page = page
	}

	if len(details) > 0 {
		return nil, invalidQueryError(details)
	}
	return parsed, nil
}

// ParsePagination reads page and limit, applying defaults and bounds.
func ParsePagination(r *http.Request) (pagination.Params, error) {
	details := map[string]string{}

	page := parseQueryIntBounded(r.URL.Query().Get("page"), "page", pagination.DefaultPage, 1, pagination.MaxPage, details)
	limit := parseQueryIntBounded(r.URL.Query().Get("limit"), "limit", pagination.DefaultLimit, 1, pagination.MaxLimit, details)

	if len(details) > 0 {
		return pagination.Params{}, invalidQueryError(details)
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}

// invalidQueryError builds the 400 for bad query parameters. A single failing
// parameter surfaces its complaint as the error reason; multiple failures get
// the generic reason with everything itemized in details.
func invalidQueryError(details map[string]string) error {
	reason := "One or more query parameters are invalid"
	if len(details) == 1 {
		for _, msg := range details {
			reason = msg
		}
	}
	return pkgerrors.New(pkgerrors.CodeInvalidQuery, "Invalid query parameters").
		WithReason(reason).
		WithDetails(details)
}

func parseQueryFloat(raw, name string, details map[string]string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		details[name] = fmt.Sprintf("%s must be a valid number", name)
		return nil
	}
	if value < 0 {
		details[name] = fmt.Sprintf("%s must be at least 0", name)
		return nil
	}
	return &value
}

func parseQueryIntBounded(raw, name string, defaultVal, min, max int, details map[string]string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		details[name] = fmt.Sprintf("%s must be a valid number", name)
		return defaultVal
	}
	if value < min {
		details[name] = fmt.Sprintf("%s must be at least %d", name, min)
		return defaultVal
	}
	if value > max {
		details[name] = fmt.Sprintf("%s must not exceed %d", name, max)
		return defaultVal
	}
	return value
}
