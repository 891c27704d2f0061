// Package kinopoisk wraps the kinopoiskapiunofficial.tech catalog API.
//
// The upstream has no structured error envelope: non-2xx outcomes are
// delivered as the decimal status code serialized as the entire response
// body (exactly three ASCII digits). The client preserves that
// convention as the discriminator between entity JSON and an echoed
// status code, classifies the code, and absorbs every failure class
// except parse defects into empty results so callers branch on
// emptiness instead of faults.
package kinopoisk
