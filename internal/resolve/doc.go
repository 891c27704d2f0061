// Package resolve turns partial local item identities into full
// catalog-backed metadata. It layers candidate matching on top of the
// kinopoisk client and maps confirmed records into media entities.
package resolve
