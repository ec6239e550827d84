package faq

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Record is a single question/answer entry from the FAQ listing.
// QuestionHash is always derived from the question text, it is never
// assigned independently.
type Record struct {
	QuestionHash string `json:"question_hash"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
}

func NewRecord(question, answer string) Record {
	sum := sha256.Sum256([]byte(question))
	return Record{
		QuestionHash: hex.EncodeToString(sum[:]),
		Question:     question,
		Answer:       answer,
	}
}

// ErrPageCountUnavailable is returned when the total page count marker
// cannot be found or parsed on the first listing page. The whole run
// cannot proceed without it.
var ErrPageCountUnavailable = fmt.Errorf("total page count marker is missing or unparsable")

// FetchError reports that a single page could not be retrieved after
// exhausting all retry attempts.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch page %d: %s", e.Page, e.Err.Error())
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
