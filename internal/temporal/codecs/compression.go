// Package codecs configures the payload codec shared by every Temporal client
// in the system. Compose payloads carry full slide bodies and speaker notes,
// which for long decks push payloads toward the server's blob size warnings;
// zlib keeps them small without a custom converter.
package codecs

import (
	"go.temporal.io/sdk/converter"
)

// DataConverter returns the default data converter wrapped with zlib
// compression. Workers and clients must agree on this converter, so all
// binaries build their client options through it.
func DataConverter() converter.DataConverter {
	return converter.NewCodecDataConverter(
		converter.GetDefaultDataConverter(),
		converter.NewZlibCodec(converter.ZlibCodecOptions{}),
	)
}
