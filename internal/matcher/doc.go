// Package matcher decides which remote media files are relevant to a search
// term and extracts season and episode numbers from their names.
//
// Names are compared case-insensitively after percent-decoding. A file is
// accepted by the first tier that succeeds:
//
//  1. phrase: the whole term appears; a single-token term must appear as a
//     standalone word
//  2. separator_phrase: the term with spaces replaced by dots or underscores
//     appears
//  3. token_ratio: for three or more tokens, the first token and at least
//     [Policy.TokenRatio] of all tokens appear
//  4. token_pair: for exactly two tokens, both appear
//  5. year: the term's year and at least one other token appear
//
// Season and episode numbers come from an ordered table of filename rules;
// the first rule that matches wins.
package matcher
