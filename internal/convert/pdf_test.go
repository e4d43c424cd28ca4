package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onePagePDF assembles a minimal valid single-page PDF showing the given
// line of text, with the cross-reference offsets computed from the actual
// object positions.
func onePagePDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<</Type/Catalog/Pages 2 0 R>>",
		"<</Type/Pages/Kids[3 0 R]/Count 1>>",
		"<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]/Contents 4 0 R/Resources<</Font<</F1 5 0 R>>>>>>",
		fmt.Sprintf("<</Length %d>>stream\n%s\nendstream", len(stream), stream),
		"<</Type/Font/Subtype/Type1/BaseFont/Helvetica>>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func TestPDFConverter_ExtractsText(t *testing.T) {
	res, err := NewPDFConverter().Convert(context.Background(), bytes.NewReader(onePagePDF("Hello PDF")))
	require.NoError(t, err)

	texts := res.Content.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "#/texts/0", texts[0].SelfRef)
	assert.Equal(t, "paragraph", texts[0].Label)
	assert.Equal(t, "Hello PDF", texts[0].Body)

	// Page text never produces table grids.
	assert.Empty(t, res.Content.Tables())
	assert.Equal(t, "Hello PDF\n", res.Markdown)
}

func TestPDFConverter_GarbageInput(t *testing.T) {
	res, err := NewPDFConverter().Convert(context.Background(), strings.NewReader("this is not a pdf"))

	require.Error(t, err)
	assert.Nil(t, res)
}

func TestPDFConverter_EmptyInput(t *testing.T) {
	res, err := NewPDFConverter().Convert(context.Background(), bytes.NewReader(nil))

	require.Error(t, err)
	assert.Nil(t, res)
}
