package mapping

import (
	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

const imageLanguage = "ru"

// ImagesFromFilm classifies a film's image URLs: cover becomes the
// backdrop, poster the primary image (with its preview as thumbnail),
// logo the logo.
func ImagesFromFilm(film kinopoisk.Film) []media.Image {
	images := make([]media.Image, 0, 3)
	if film.CoverURL != "" {
		images = append(images, media.Image{
			URL:      film.CoverURL,
			Kind:     media.ImageBackdrop,
			Language: imageLanguage,
		})
	}
	if film.PosterURL != "" {
		images = append(images, media.Image{
			URL:          film.PosterURL,
			ThumbnailURL: film.PosterURLPreview,
			Kind:         media.ImagePrimary,
			Language:     imageLanguage,
		})
	}
	if film.LogoURL != "" {
		images = append(images, media.Image{
			URL:      film.LogoURL,
			Kind:     media.ImageLogo,
			Language: imageLanguage,
		})
	}
	return images
}
