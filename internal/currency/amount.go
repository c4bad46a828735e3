package currency

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Amount é um valor monetário que aceita, no JSON, tanto número quanto texto
// formatado ("R$ 450.000,00"), como o formulário de simulação envia.
type Amount float64

// Float64 devolve o valor como float64.
func (a Amount) Float64() float64 { return float64(a) }

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(Parse(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("valor monetário inválido: %w", err)
	}
	*a = Amount(f)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}
