package convert

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOrderHTML = `<!DOCTYPE html>
<html>
<head><title>Orden de transporte</title><style>td{padding:2px}</style></head>
<body>
  <h1>Orden de Transporte</h1>
  <p>SEMAT</p>
  <p>Documento generado automáticamente</p>
  <p>No responder a este correo</p>
  <p>Referencia interna</p>
  <p>EXP-2024-0042</p>
  <p>15/03/2024</p>
  <table>
    <tr><td>Matrícula / Bastidor:</td><td>1234ABC</td></tr>
    <tr><td>Marca:</td><td>Marca: SEAT</td></tr>
    <tr><td>Modelo:</td><td>Modelo: SEAT Ibiza</td></tr>
  </table>
  <table>
    <tr><td>Punto de Recogida:</td><td>Campa Norte</td></tr>
    <tr><td>Persona de Contacto:</td><td>Ana García</td></tr>
    <tr><td>Dirección:</td><td>Calle Mayor 1</td></tr>
    <tr><td>Código Postal:</td><td>28001 Madrid</td></tr>
    <tr><td>Provincia:</td><td>Madrid</td></tr>
    <tr><td>Teléfono de Contacto:</td><td>600111222</td></tr>
    <tr><td>Observaciones:</td><td>Observaciones: llamar antes</td></tr>
  </table>
  <table>
    <tr><td>Punto de Entrega:</td><td>Taller Sur</td></tr>
    <tr><td>Persona de Contacto:</td><td>Luis Pérez</td></tr>
    <tr><td>Dirección:</td><td>Av. del Puerto 9</td></tr>
    <tr><td>Código Postal:</td><td>46021</td></tr>
    <tr><td>Provincia:</td><td>Valencia</td></tr>
    <tr><td>Teléfono de Contacto:</td><td>600333444</td></tr>
    <tr><td>Observaciones:</td><td></td></tr>
  </table>
</body>
</html>`

func TestHTMLConverter_OrderSheet(t *testing.T) {
	res, err := NewHTMLConverter().Convert(context.Background(), strings.NewReader(sampleOrderHTML))
	require.NoError(t, err)

	texts := res.Content.Texts()
	tables := res.Content.Tables()

	require.Len(t, tables, 3)
	assert.Equal(t, "#/tables/0", tables[0].SelfRef)
	assert.Equal(t, "Matrícula / Bastidor:", tables[0].Grid[0][0].Text)
	assert.Equal(t, "1234ABC", tables[0].Grid[0][1].Text)

	// Heading + six paragraphs precede the tables.
	require.GreaterOrEqual(t, len(texts), 7)
	assert.Equal(t, "heading_1", texts[0].Label)

	body, ok := res.Content.TextBySelfRef("#/texts/5")
	require.True(t, ok)
	assert.Equal(t, "EXP-2024-0042", body)

	body, ok = res.Content.TextBySelfRef("#/texts/6")
	require.True(t, ok)
	assert.Equal(t, "15/03/2024", body)

	assert.Contains(t, res.Markdown, "# Orden de Transporte")
	assert.Contains(t, res.Markdown, "| Punto de Recogida: | Campa Norte |")
}

func TestHTMLConverter_NestedTables(t *testing.T) {
	const nested = `<html><body>
	<table>
	  <tr><td>outer</td><td>
	    <table><tr><td>inner-a</td><td>inner-b</td></tr></table>
	  </td></tr>
	</table>
	</body></html>`

	res, err := NewHTMLConverter().Convert(context.Background(), strings.NewReader(nested))
	require.NoError(t, err)

	tables := res.Content.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, "outer", tables[0].Grid[0][0].Text)
	// Nested table text is excluded from the hosting cell and hoisted.
	assert.Equal(t, "", tables[0].Grid[0][1].Text)
	assert.Equal(t, "inner-a", tables[1].Grid[0][0].Text)
	assert.Equal(t, "inner-b", tables[1].Grid[0][1].Text)
}

func TestHTMLConverter_ColSpan(t *testing.T) {
	const doc = `<html><body>
	<table>
	  <tr><th colspan="2">Vehículo</th></tr>
	  <tr><td>Marca:</td><td>SEAT</td></tr>
	</table>
	</body></html>`

	res, err := NewHTMLConverter().Convert(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)

	tables := res.Content.Tables()
	require.Len(t, tables, 1)

	header := tables[0].Grid[0]
	require.Len(t, header, 1)
	assert.Equal(t, "Vehículo", header[0].Text)
	assert.Equal(t, 2, header[0].ColSpan)
	assert.Equal(t, 0, tables[0].Grid[1][0].ColSpan)

	// The spanning cell fills both columns so rows stay aligned.
	assert.Contains(t, res.Markdown, "| Vehículo |  |")
	assert.Contains(t, res.Markdown, "| Marca: | SEAT |")
}

func TestHTMLConverter_EmptyDocument(t *testing.T) {
	_, err := NewHTMLConverter().Convert(context.Background(), strings.NewReader("<html><body></body></html>"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestHTMLConverter_SkipsScriptAndStyle(t *testing.T) {
	const doc = `<html><body><script>var x = "hidden";</script><p>visible</p></body></html>`
	res, err := NewHTMLConverter().Convert(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)

	texts := res.Content.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "visible", texts[0].Body)
}

func TestForDocument(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        interface{}
		wantErr     error
	}{
		{"html by content type", "text/html; charset=utf-8", "body.bin", &HTMLConverter{}, nil},
		{"pdf by content type", "application/pdf", "order.bin", &PDFConverter{}, nil},
		{"html by extension", "application/octet-stream", "body.html", &HTMLConverter{}, nil},
		{"pdf by extension", "application/octet-stream", "order.PDF", &PDFConverter{}, nil},
		{"unsupported", "image/png", "photo.png", nil, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := ForDocument(tt.contentType, tt.filename)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, conv)
		})
	}
}
