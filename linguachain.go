// Package linguachain translates short texts by walking a chain of free
// translation providers until one answers, and attaches a Latin-script
// pronunciation for targets the transliterate package can romanize.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/linguachain"
//	    "github.com/ZaguanLabs/linguachain/provider"
//	)
//
//	func main() {
//	    t := linguachain.NewTranslator(provider.NewChainProviders(provider.Config{}))
//
//	    result, err := t.Translate(context.Background(), "Hello", "te")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.TranslatedText) // హలో
//	    fmt.Println(*result.Pronunciation) // halo
//	}
//
// Providers are tried strictly in order. A failing provider is logged and
// skipped; the caller sees an error only when every provider failed
// (*NoProviderAvailableError) or the context was cancelled.
package linguachain
