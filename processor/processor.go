// Package processor extracts translatable text from structured content and
// writes translations back.
package processor

import "github.com/ZaguanLabs/linguachain"

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = linguachain.ContentProcessor

// TextNode is an alias to the main package type.
type TextNode = linguachain.TextNode
