// Package match scores tenders against a free-text company profile.
//
// The Matcher projects the profile and every tender into the vocabulary
// model's vector space and ranks tenders by cosine similarity. It owns no
// persistent state: a matching request is a pure function of the profile
// text, the tender snapshot, and the model snapshot it was constructed with.
// Projection of the tender corpus runs on a worker pool; results are placed
// by index so the output stays deterministic.
//
// FilterByScore applies the user-adjustable relevance threshold on top of a
// ranked result set without disturbing its order.
package match
