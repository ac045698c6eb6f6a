package profile

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	CalcFixed      = "fixed"
	CalcPerPersons = "per_persons"
	CalcPerGuest   = "per_guest"
)

// Rule tells how much of one item an event needs.
type Rule struct {
	Quantity decimal.Decimal
	Unit     string
	Calc     string
	Ratio    int
}

// Profile holds the per-venue rule set, keyed by item name, with the
// guest baseline the quantities were sized for.
type Profile struct {
	BaseGuests int
	Rules      map[string]Rule
}

// Catalog is the venue-keyed rule table. Built once by Default and
// never mutated afterwards; unknown venues resolve to the fallback.
type Catalog struct {
	profiles map[string]Profile
	fallback string
}

func fixed(q float64, unit string) Rule {
	return Rule{Quantity: decimal.NewFromFloat(q), Unit: unit, Calc: CalcFixed}
}

func perPersons(q float64, unit string, ratio int) Rule {
	return Rule{Quantity: decimal.NewFromFloat(q), Unit: unit, Calc: CalcPerPersons, Ratio: ratio}
}

func perGuest(q float64, unit string, ratio int) Rule {
	return Rule{Quantity: decimal.NewFromFloat(q), Unit: unit, Calc: CalcPerGuest, Ratio: ratio}
}

// sharedTableItems is the communal food subset defined on the
// authoritative profile and duplicated into every other venue.
var sharedTableItems = []string{
	"Queso Brie", "Queso Amarillo", "Queso Blanco", "Queso Azul",
	"Queso Parmesano", "Queso Cuadrado Amarillo", "Queso Cuadrado Blanco",
	"Queso Cuadrado Azul", "Prochuto", "Salami", "Salchichón",
	"Galletas Mixtas", "Humos", "Cherry", "Aceituna Negra",
	"Aceituna Verde", "Piña", "Ensalada de Pollo", "Fresa", "Uva",
	"Maní", "Limón",
}

// Default builds the catalog. Diamond is the authoritative profile and
// defines the full item set; its shared-table items are copied into
// kendall, and doral is a copy of kendall.
func Default() Catalog {
	diamond := Profile{
		BaseGuests: 80,
		Rules: map[string]Rule{
			// Alcoholic drinks
			"Champaña":        perPersons(10, "botella", 8), // 1 bottle per 8 guests
			"Sidra":           perPersons(10, "botella", 8),
			"Whisky Premium":  fixed(2, "botella"),
			"Whisky House":    fixed(2, "botella"),
			"Vodka":           fixed(2, "botella"),
			"Tequila":         fixed(1, "botella"),
			"Ron Spice":       fixed(2, "botella"),
			"Ron Blanco":      fixed(2, "botella"),
			"Vino Blanco":     fixed(6, "botella"),
			"Vino Tinto":      fixed(6, "botella"),
			"Vino Chardonnay": fixed(6, "botella"),
			"Chamberry":       fixed(2, "botella"),
			"Blue Curacao":    fixed(2, "botella"),
			"Piña Colada":     fixed(4, "botella"),

			// Soft drinks
			"Jugo de Naranja": fixed(1, "botella"),
			"Agua Tónica":     fixed(2, "botella"),
			"Club Soda":       fixed(2, "botella"),
			"Coca Cola":       fixed(6, "botella"),
			"Coca Cola Zero":  fixed(2, "botella"),
			"Coca Cola Light": fixed(1, "botella"),
			"Sprite":          fixed(4, "botella"),
			"Sprite Zero":     fixed(1, "botella"),
			"Fanta Naranja":   fixed(1, "botella"),
			"Granadina":       fixed(0.25, "botella"),

			// Tableware
			"Vasos de Vidrio":            fixed(200, "unidad"),
			"Vasos de Plástico":          fixed(100, "unidad"),
			"Platos para Cake":           perGuest(80, "unidad", 1),  // 1 per guest
			"Platos de Vidrio Pequeños":  perGuest(160, "unidad", 2), // 2 per guest
			"Servilletas Blancas":        fixed(1, "paquete"),
			"Servilletas Negras":         fixed(1, "paquete"),
			"Pinchos para Dientes":       fixed(1, "unidad"),

			// Decoration
			"Velas para Cake": fixed(2, "unidad"),

			// Cheese table
			"Queso Brie":              fixed(1, "bola"),
			"Queso Amarillo":          fixed(2, "bolsa"),
			"Queso Blanco":            fixed(2, "bolsa"),
			"Queso Azul":              fixed(2, "bolsa"),
			"Queso Parmesano":         fixed(2, "bolsa"),
			"Queso Cuadrado Amarillo": fixed(4, "bolsa"),
			"Queso Cuadrado Blanco":   fixed(4, "bolsa"),
			"Queso Cuadrado Azul":     fixed(4, "bolsa"),
			"Prochuto":                fixed(0.25, "libra"),
			"Salami":                  fixed(0.25, "libra"),
			"Salchichón":              fixed(0.25, "libra"),
			"Galletas Mixtas":         fixed(1, "paquete"),
			"Humos":                   fixed(1, "unidad"),
			"Cherry":                  fixed(0.25, "libra"),
			"Aceituna Negra":          fixed(1, "paquete"),
			"Aceituna Verde":          fixed(1, "paquete"),
			"Piña":                    fixed(0.5, "unidad"),
			"Ensalada de Pollo":       fixed(1, "paquete"),
			"Fresa":                   fixed(1, "paquete"),
			"Uva":                     fixed(1, "paquete"),
			"Maní":                    fixed(0.25, "libra"),
			"Limón":                   fixed(2, "paquete"),
		},
	}

	kendall := Profile{
		BaseGuests: 50,
		Rules: map[string]Rule{
			"Whisky House":   fixed(1, "botella"),
			"Whisky Premium": fixed(1, "botella"),
			"Ron Blanco":     fixed(1, "botella"),
			"Ron Spice":      fixed(1, "botella"),
			"Vodka":          fixed(1, "botella"),
			"Tequila":        fixed(1, "botella"),
			"Vino Blanco":    fixed(4, "botella"),
			"Vino Tinto":     fixed(4, "botella"),
			"Chamberry":      fixed(4, "botella"),
			"Piña Colada":    fixed(3, "botella"),
			"Sidra":          fixed(7, "botella"),
			"Champaña":       fixed(7, "botella"),

			"Sprite":          fixed(3, "botella"),
			"Sprite Zero":     fixed(1, "botella"),
			"Fanta Naranja":   fixed(1, "botella"),
			"Club Soda":       fixed(1, "botella"),
			"Coca Cola Light": fixed(1, "botella"),
			"Coca Cola Zero":  fixed(1, "botella"),
			"Coca Cola":       fixed(4, "botella"),
			"Blue Curacao":    fixed(2, "botella"),
			"Granadina":       fixed(0.25, "botella"),

			"Vasos de Plástico":          fixed(200, "unidad"),
			"Vasos de Plástico Pequeños": fixed(100, "unidad"),
			"Platos para Cake":           perGuest(50, "unidad", 1),
			"Platos de Vidrio Pequeños":  perGuest(100, "unidad", 2),
			"Servilletas Blancas":        fixed(1, "paquete"),
			"Servilletas Negras":         fixed(1, "paquete"),

			"Velas para Cake": fixed(2, "unidad"),
		},
	}

	for _, name := range sharedTableItems {
		kendall.Rules[name] = diamond.Rules[name]
	}

	doral := Profile{BaseGuests: kendall.BaseGuests, Rules: make(map[string]Rule, len(kendall.Rules))}
	for name, rule := range kendall.Rules {
		doral.Rules[name] = rule
	}

	return Catalog{
		profiles: map[string]Profile{
			"diamond": diamond,
			"kendall": kendall,
			"doral":   doral,
		},
		fallback: "diamond",
	}
}

// Resolve returns the profile for a venue name, case-insensitively.
// Unknown names resolve to the authoritative profile; the second
// return reports whether that fallback was taken.
func (c Catalog) Resolve(venueName string) (Profile, bool) {
	key := strings.ToLower(strings.TrimSpace(venueName))
	if p, ok := c.profiles[key]; ok {
		return p, false
	}
	return c.profiles[c.fallback], true
}

// Authoritative returns the fallback profile.
func (c Catalog) Authoritative() Profile {
	return c.profiles[c.fallback]
}
