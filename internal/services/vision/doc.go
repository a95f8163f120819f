// Package vision resolves video titles from banner crop images through a
// vision-capable chat completion API (OpenRouter-compatible). The caller
// treats any failure here as "no title"; nothing in a detection run depends
// on this service succeeding.
package vision
