// Package vectorize implements the weighted-term vocabulary model used for
// profile-to-tender matching.
//
// A Model is trained once over the full tender corpus (Fit) and then projects
// arbitrary text into a fixed-dimensional vector space (Transform). Training
// learns a vocabulary of unigrams and bigrams, capped at a fixed size, with
// smoothed inverse-document-frequency weights. Projection multiplies raw term
// frequency by the learned weight and L2-normalizes the result, so cosine
// similarity between two projected vectors reduces to a dot product.
//
// Both Fit and Transform are pure and deterministic: the same corpus always
// yields the same vocabulary and weights, which keeps matching reproducible
// and makes the persisted model a rebuildable cache rather than a source of
// truth. Terms never seen during training are silently dropped at projection
// time.
package vectorize
