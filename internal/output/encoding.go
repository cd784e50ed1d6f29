package output

import "ambilight-agent/internal/model"

// EncodeRGB24 packs pixels as consecutive r,g,b bytes.
func EncodeRGB24(pixels []model.RGB) []byte {
	out := make([]byte, 0, len(pixels)*3)
	for _, p := range pixels {
		out = append(out, p.R, p.G, p.B)
	}
	return out
}
