package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"strings"
)

// DataURIPrefix é o prefixo das assinaturas aceitas e geradas.
const DataURIPrefix = "data:image/png;base64,"

var ErrInvalidDataURI = errors.New("assinatura deve ser uma imagem PNG em data URI")

// DecodeDataURI extrai e valida a imagem PNG de um data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(strings.ToLower(uri), DataURIPrefix) {
		return nil, ErrInvalidDataURI
	}

	raw, err := base64.StdEncoding.DecodeString(uri[len(DataURIPrefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return raw, nil
}

// EncodeDataURI monta um data URI a partir de bytes PNG já validados.
func EncodeDataURI(pngBytes []byte) (string, error) {
	if _, err := png.DecodeConfig(bytes.NewReader(pngBytes)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(pngBytes), nil
}
