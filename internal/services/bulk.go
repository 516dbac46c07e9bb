package services

import (
	"context"
	"errors"
)

type BulkSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type BulkItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BulkResult struct {
	Results []BulkItemResult `json:"results"`
	Summary BulkSummary      `json:"summary"`
}

// runBulk applies fn to every id in order. A failing item is recorded and
// never stops the batch.
func runBulk(ctx context.Context, ids []string, fn func(ctx context.Context, id string) (string, error)) *BulkResult {
	result := &BulkResult{
		Results: make([]BulkItemResult, 0, len(ids)),
		Summary: BulkSummary{Total: len(ids)},
	}
	for _, id := range ids {
		msg, err := fn(ctx, id)
		if err != nil {
			result.Results = append(result.Results, BulkItemResult{ID: id, Message: failureMessage(err)})
			result.Summary.Failed++
			continue
		}
		result.Results = append(result.Results, BulkItemResult{ID: id, Success: true, Message: msg})
		result.Summary.Successful++
	}
	return result
}

// failureMessage is the client-safe text of err.
func failureMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.PublicMessage()
	}
	return err.Error()
}
