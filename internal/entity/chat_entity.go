package entity

import "time"

// Turn is one message inside a session history. Immutable once created.
type Turn struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// Session is the view of a chat session returned by the session store.
// The store hands out copies; callers never hold a reference into live
// store state beyond one request.
type Session struct {
	Id           string
	Turns        []Turn
	CreatedAt    time.Time
	LastActivity time.Time
}
