package httputil

import "net/http"

// CatalogHeaders returns the headers the storefront sends to the card API.
func CatalogHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "*/*")
	h.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")
	h.Set("Accept-Encoding", "gzip, br")
	h.Set("Origin", "https://www.wildberries.ru")
	h.Set("Referer", "https://www.wildberries.ru/")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "cross-site")
	return h
}

// ImageHeaders returns headers for CDN image requests.
func ImageHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	h.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8")
	h.Set("Referer", "https://www.wildberries.ru/")
	h.Set("Sec-Fetch-Dest", "image")
	h.Set("Sec-Fetch-Mode", "no-cors")
	h.Set("Sec-Fetch-Site", "cross-site")
	return h
}

// Apply copies h into req without clobbering headers already set.
func Apply(req *http.Request, h http.Header) {
	for k, v := range h {
		if _, ok := req.Header[k]; !ok {
			req.Header[k] = v
		}
	}
}
