package user

import (
	"context"
	"encoding/json"
)

// Getter is the network capability a load needs. Get returns the body of a
// successful response.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Dispatch submits an event to a store and returns the resulting state.
type Dispatch func(Event) *State

// Action is an asynchronous unit of work run by Store.Run. It may dispatch
// any number of events.
type Action func(ctx context.Context, dispatch Dispatch, getState func() *State, getter Getter) error

type listResponse struct {
	Results []Record `json:"results"`
}

// Load returns an action that fetches endpoint once and dispatches a single
// Loaded event with the body's results list. Any failure dispatches nothing:
// there is no retry, and concurrent loads are applied in completion order.
func Load(endpoint string) Action {
	return func(ctx context.Context, dispatch Dispatch, _ func() *State, getter Getter) error {
		if getter == nil {
			return &FetchError{Kind: KindNetwork, URL: endpoint, Err: errNoGetter}
		}
		body, err := getter.Get(ctx, endpoint)
		if err != nil {
			return asFetchError(endpoint, err)
		}

		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return &FetchError{Kind: KindDecode, URL: endpoint, Err: err}
		}
		if resp.Results == nil {
			return &FetchError{Kind: KindDecode, URL: endpoint, Err: errMissingResults}
		}

		dispatch(Loaded{Users: resp.Results})
		return nil
	}
}
