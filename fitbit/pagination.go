package fitbit

import (
	"errors"
	"fmt"
	"net/url"
)

// Sort orders accepted by list endpoints.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ErrNoNextPage is returned by the NextPage helpers when the last page of a
// list has been reached.
var ErrNoNextPage = errors.New("fitbit: no next page available")

// ErrInvalidOptions is wrapped by every ListOptions validation failure.
var ErrInvalidOptions = errors.New("fitbit: invalid list options")

// ListOptions are the parameters shared by the offset-paginated log lists
// (activity logs, sleep logs). Exactly one of BeforeDate and AfterDate must
// be set; dates are yyyy-MM-dd or yyyy-MM-ddTHH:mm:ss.
type ListOptions struct {
	BeforeDate string `form:"beforeDate,omitempty"`
	AfterDate  string `form:"afterDate,omitempty"`

	// Sort must be SortDesc with BeforeDate and SortAsc with AfterDate.
	Sort string `form:"sort"`

	Offset int `form:"offset"`

	// Maximum number of entries returned. The API limits this to 100.
	Limit int `form:"limit"`
}

func (o ListOptions) validate() error {
	switch {
	case o.BeforeDate == "" && o.AfterDate == "":
		return fmt.Errorf("%w: one of BeforeDate or AfterDate is required", ErrInvalidOptions)
	case o.BeforeDate != "" && o.AfterDate != "":
		return fmt.Errorf("%w: BeforeDate and AfterDate are mutually exclusive", ErrInvalidOptions)
	case o.BeforeDate != "" && o.Sort != SortDesc:
		return fmt.Errorf("%w: BeforeDate requires sort %q", ErrInvalidOptions, SortDesc)
	case o.AfterDate != "" && o.Sort != SortAsc:
		return fmt.Errorf("%w: AfterDate requires sort %q", ErrInvalidOptions, SortAsc)
	case o.Limit < 1 || o.Limit > 100:
		return fmt.Errorf("%w: limit must be between 1 and 100, got %d", ErrInvalidOptions, o.Limit)
	case o.Offset < 0:
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidOptions)
	}
	return nil
}

// Pagination is the "pagination" object attached to list responses.
type Pagination struct {
	BeforeDate string `json:"beforeDate"`
	AfterDate  string `json:"afterDate"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	Sort       string `json:"sort"`
	Next       string `json:"next"`
	Previous   string `json:"previous"`
}

// nextListOptions extracts the options for the page after resp from the
// "next" link the API returns.
func nextListOptions(resp *Response) (ListOptions, error) {
	var page struct {
		Pagination Pagination `json:"pagination"`
	}
	if err := resp.Decode(&page); err != nil {
		return ListOptions{}, err
	}
	if page.Pagination.Next == "" {
		return ListOptions{}, ErrNoNextPage
	}

	next, err := url.Parse(page.Pagination.Next)
	if err != nil {
		return ListOptions{}, fmt.Errorf("fitbit: parse next page link: %w", err)
	}

	var opts ListOptions
	if err := formDecoder.Decode(&opts, next.Query()); err != nil {
		return ListOptions{}, fmt.Errorf("fitbit: decode next page link: %w", err)
	}
	return opts, nil
}
