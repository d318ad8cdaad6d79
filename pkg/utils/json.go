package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var prettyJSON = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// PrettyJSON serializa o valor com indentação de dois espaços e quebra de linha final.
// []byte é tratado como JSON já serializado e apenas reindentado.
func PrettyJSON(in any) (string, error) {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := prettyJSON.Unmarshal(raw, &decoded); err != nil {
			return "", err
		}
		in = decoded
	}

	out, err := prettyJSON.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}

	return string(out) + "\n", nil
}
