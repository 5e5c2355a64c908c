package cart

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

var fragmentTemplate = template.Must(template.New("cart").Funcs(template.FuncMap{"actionLabel": actionLabel}).Parse(`<div id="cart-items" data-total-count="{{.TotalCount}}">
{{- range .Rows}}
  <div class="cart-item" data-id="{{.ID}}" data-index="{{.Index}}">
    <span class="cart-item__name">{{.Name}}</span>
    <span class="cart-item__price">{{.UnitPrice}}</span>
    <div class="cart-item__controls">
{{- range .Actions}}
      <button type="button" class="cart-item__{{.Kind}}" data-action="{{.Kind}}" data-id="{{.ID}}" data-index="{{.Index}}">{{actionLabel .Kind}}</button>
{{- end}}
    </div>
    <span class="cart-item__quantity">{{.Quantity}}</span>
  </div>
{{- end}}
</div>
<span id="cart-count">{{.TotalCount}}</span>
<span id="cart-total">{{.TotalPrice}}</span>
`))

func actionLabel(kind ActionKind) string {
	switch kind {
	case ActionDecrement:
		return "-"
	case ActionIncrement:
		return "+"
	case ActionDelete:
		return "Remove"
	}
	return string(kind)
}

// WriteFragment renders the item list and both aggregates as the HTML that replaces
// the cart container.
func WriteFragment(w io.Writer, view View) error {
	var buf bytes.Buffer
	if err := fragmentTemplate.Execute(&buf, view); err != nil {
		return fmt.Errorf("render cart fragment: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
