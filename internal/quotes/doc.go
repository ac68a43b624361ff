// Package quotes owns the quote collection: loading and saving it, picking a
// quote to display, adding quotes and moving the collection in and out as
// JSON.
//
// # Storage
//
// A Store is backed by two key/value stores. The durable store keeps the
// collection (key "quotes", a JSON array) and the selected category (key
// "selectedCategory"). A session store, passed per call, keeps the last quote
// shown to that session (key "lastQuote").
//
//	store := quotes.NewStore(db.Settings())
//	q, ok := store.PickQuote(session, "Life")
//
// # Mutation
//
// The collection only grows. AddQuote, ImportQuotes and Merge append to the
// end and save the whole collection; if the save fails the append is undone
// so memory and storage never disagree.
package quotes
