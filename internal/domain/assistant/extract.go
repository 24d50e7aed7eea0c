package assistant

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/svr1m/PawCare-App/internal/ports/inference"
)

// FAQ es un par pregunta/respuesta extraído de la salida del modelo.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var (
	tipMarker      = regexp.MustCompile(`^\s*(?:-|\d+\.)`)
	questionMarker = regexp.MustCompile(`[-*]\s*Question:`)
	answerMarker   = regexp.MustCompile(`\s*Answer:\s*`)
)

const minTipLen = 4

// ExtractTips parte el texto en líneas, quita un marcador inicial ("-" o "N.")
// y descarta líneas de 3 caracteres o menos. Puede devolver vacío.
func ExtractTips(raw string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		tip := strings.TrimSpace(tipMarker.ReplaceAllString(line, ""))
		if utf8.RuneCountInString(tip) < minTipLen {
			continue
		}
		out = append(out, tip)
	}
	return out
}

// ExtractFAQs busca bloques "- Question: <q> Answer: <a>"; la respuesta corre
// hasta el próximo marcador de pregunta o el fin del texto. Sin matches => vacío.
func ExtractFAQs(raw string) []FAQ {
	out := make([]FAQ, 0)

	locs := questionMarker.FindAllStringIndex(raw, -1)
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := raw[loc[1]:end]

		a := answerMarker.FindStringIndex(block)
		if a == nil {
			continue
		}
		q := strings.TrimSpace(block[:a[0]])
		ans := strings.TrimSpace(block[a[1]:])
		if q == "" || ans == "" {
			continue
		}
		out = append(out, FAQ{Question: q, Answer: ans})
	}
	return out
}

// ExtractBreedLabel devuelve el label de la primera predicción.
func ExtractBreedLabel(preds []inference.Prediction) (string, error) {
	if len(preds) == 0 {
		return "", inference.ErrUnexpectedShape
	}
	label := strings.TrimSpace(preds[0].Label)
	if label == "" {
		return "", inference.ErrUnexpectedShape
	}
	return label, nil
}
