// Package similarity builds a two-document TF-IDF feature space and scores the pair with
// cosine similarity.
//
// The score is a bag-of-words weighted-term overlap measure in [0, 1]. It ignores word
// order: 1.0 means identical term-weight distributions, not an exact copy, and 0.0 means
// the documents share no weighted terms. It is not an edit distance.
package similarity
