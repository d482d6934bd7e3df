package smartsheet

import (
	"fmt"
	"strconv"
	"strings"
)

// FontFamily indexes the service's font family table.
type FontFamily int

const (
	FontArial FontFamily = iota
	FontRoboto
	FontTahoma
	FontTimesNewRoman
	FontVerdana
)

var fontFamilyNames = []string{"Arial", "Roboto", "Tahoma", "Times New Roman", "Verdana"}

func (f FontFamily) String() string { return enumName("FontFamily", fontFamilyNames, int(f)) }

func (f FontFamily) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *FontFamily) UnmarshalText(b []byte) error {
	i, err := parseEnumName("font family", fontFamilyNames, string(b))
	if err != nil {
		return err
	}
	*f = FontFamily(i)
	return nil
}

// FontSize is a point size from the service's font size table. The constants
// are offset so that the default size (10pt) is the zero value.
type FontSize int

const fontSizeOffset = 2

const (
	FontSize8 FontSize = iota - fontSizeOffset
	FontSize9
	FontSize10
	FontSize12
	FontSize14
	FontSize16
	FontSize18
	FontSize20
	FontSize24
	FontSize28
	FontSize32
	FontSize36
)

var fontSizeNames = []string{"8", "9", "10", "12", "14", "16", "18", "20", "24", "28", "32", "36"}

// Points returns the size in points, or 10 for a value outside the table.
func (s FontSize) Points() int {
	i := int(s) + fontSizeOffset
	if i < 0 || i >= len(fontSizeNames) {
		return 10
	}
	n, _ := strconv.Atoi(fontSizeNames[i])
	return n
}

func (s FontSize) String() string {
	return enumName("FontSize", fontSizeNames, int(s)+fontSizeOffset)
}

func (s FontSize) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *FontSize) UnmarshalText(b []byte) error {
	i, err := parseEnumName("font size", fontSizeNames, string(b))
	if err != nil {
		return err
	}
	*s = FontSize(i - fontSizeOffset)
	return nil
}

// HorizontalAlign is a cell's horizontal alignment.
type HorizontalAlign int

const (
	HorizontalAlignDefault HorizontalAlign = iota
	HorizontalAlignLeft
	HorizontalAlignCenter
	HorizontalAlignRight
)

var horizontalAlignNames = []string{"default", "left", "center", "right"}

func (a HorizontalAlign) String() string {
	return enumName("HorizontalAlign", horizontalAlignNames, int(a))
}

func (a HorizontalAlign) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *HorizontalAlign) UnmarshalText(b []byte) error {
	i, err := parseEnumName("horizontal align", horizontalAlignNames, string(b))
	if err != nil {
		return err
	}
	*a = HorizontalAlign(i)
	return nil
}

// VerticalAlign is a cell's vertical alignment.
type VerticalAlign int

const (
	VerticalAlignDefault VerticalAlign = iota
	VerticalAlignTop
	VerticalAlignMiddle
	VerticalAlignBottom
)

var verticalAlignNames = []string{"default", "top", "middle", "bottom"}

func (a VerticalAlign) String() string {
	return enumName("VerticalAlign", verticalAlignNames, int(a))
}

func (a VerticalAlign) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *VerticalAlign) UnmarshalText(b []byte) error {
	i, err := parseEnumName("vertical align", verticalAlignNames, string(b))
	if err != nil {
		return err
	}
	*a = VerticalAlign(i)
	return nil
}

// Color indexes the service's color palette. ColorAutomatic (the zero value)
// leaves the color to the sheet.
type Color int

const (
	ColorAutomatic Color = iota
	ColorBlack
	ColorWhite
	ColorTransparent

	ColorRedLighter
	ColorOrangeLighter
	ColorYellowLighter
	ColorGreenLighter
	ColorBlueLighter
	ColorPurpleLighter
	ColorBeigeLighter

	ColorRedLight
	ColorOrangeLight
	ColorYellowLight
	ColorGreenLight
	ColorBlueLight
	ColorPurpleLight
	ColorBeigeLight
	ColorBrownLight

	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorBeige
	ColorBrown

	ColorRedDark
	ColorOrangeDark
	ColorYellowDark
	ColorGreenDark
	ColorBlueDark
	ColorPurpleDark
	ColorBeigeDark
	ColorBrownDark

	ColorRedDarker
	ColorOrangeDarker
	ColorYellowDarker
	ColorGreenDarker
	ColorBlueDarker
	ColorPurpleDarker
	ColorBeigeDarker
)

var colorTable = []struct {
	name string
	hex  string
}{
	{"AUTOMATIC", ""},
	{"BLACK", "#000000"},
	{"WHITE", "#FFFFFF"},
	{"TRANSPARENT", "transparent"},

	{"RED_LIGHTER", "#EDE3EB"},
	{"ORANGE_LIGHTER", "#FDF4E2"},
	{"YELLOW_LIGHTER", "#FFFEE9"},
	{"GREEN_LIGHTER", "#EAF5EA"},
	{"BLUE_LIGHTER", "#E6F1FD"},
	{"PURPLE_LIGHTER", "#F1E5F4"},
	{"BEIGE_LIGHTER", "#F0E9DF"},

	{"RED_LIGHT", "#F8CED3"},
	{"ORANGE_LIGHT", "#FAE2B5"},
	{"YELLOW_LIGHT", "#FFFF96"},
	{"GREEN_LIGHT", "#CDE6CB"},
	{"BLUE_LIGHT", "#C0DCF9"},
	{"PURPLE_LIGHT", "#E5C9ED"},
	{"BEIGE_LIGHT", "#EBDDCD"},
	{"BROWN_LIGHT", "#E5E5E5"},

	{"RED", "#E88581"},
	{"ORANGE", "#F7CF87"},
	{"YELLOW", "#FEFE54"},
	{"GREEN", "#91CF8D"},
	{"BLUE", "#74B1F3"},
	{"PURPLE", "#C793D5"},
	{"BEIGE", "#CBB093"},
	{"BROWN", "#BDBDBD"},

	{"RED_DARK", "#D8473A"},
	{"ORANGE_DARK", "#F09336"},
	{"YELLOW_DARK", "#FCEE4F"},
	{"GREEN_DARK", "#61AF58"},
	{"BLUE_DARK", "#2D60BD"},
	{"PURPLE_DARK", "#8621A7"},
	{"BEIGE_DARK", "#8D501A"},
	{"BROWN_DARK", "#757575"},

	{"RED_DARKER", "#8C231B"},
	{"ORANGE_DARKER", "#D95B27"},
	{"YELLOW_DARKER", "#E5C943"},
	{"GREEN_DARKER", "#407E39"},
	{"BLUE_DARKER", "#183378"},
	{"PURPLE_DARKER", "#591086"},
	{"BEIGE_DARKER", "#542F0B"},
}

// Hex returns the "#RRGGBB" value of the color. Automatic and transparent
// have no hex value and return "".
func (c Color) Hex() string {
	if c < 0 || int(c) >= len(colorTable) || c == ColorTransparent {
		return ""
	}
	return colorTable[c].hex
}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorTable) {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorTable[c].name
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText accepts a palette name (RED_DARK) or its hex value (#D8473A).
func (c *Color) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	for i, e := range colorTable {
		if strings.EqualFold(s, e.name) || (e.hex != "" && strings.EqualFold(s, e.hex)) {
			*c = Color(i)
			return nil
		}
	}
	return fmt.Errorf("unknown color %q", s)
}

// Currency indexes the service's currency table.
type Currency int

const (
	CurrencyNone Currency = iota
	CurrencyARS
	CurrencyAUD
	CurrencyBRL
	CurrencyCAD
	CurrencyCLP
	CurrencyEUR
	CurrencyGBP
	CurrencyILS
	CurrencyINR
	CurrencyJPY
	CurrencyMXN
	CurrencyRUB
	CurrencyUSD
	CurrencyZAR
	CurrencyCHF
	CurrencyCNY
	CurrencyDKK
	CurrencyHKD
	CurrencyKRW
	CurrencyNOK
	CurrencyNZD
	CurrencySEK
	CurrencySGD
)

var currencyCodes = []string{
	"none", "ARS", "AUD", "BRL", "CAD", "CLP", "EUR", "GBP", "ILS", "INR", "JPY", "MXN",
	"RUB", "USD", "ZAR", "CHF", "CNY", "DKK", "HKD", "KRW", "NOK", "NZD", "SEK", "SGD",
}

// currencySymbols is used when rendering currency number formats locally.
var currencySymbols = map[Currency]string{
	CurrencyUSD: "$", CurrencyCAD: "$", CurrencyAUD: "$", CurrencyNZD: "$", CurrencyHKD: "$",
	CurrencySGD: "$", CurrencyMXN: "$", CurrencyARS: "$", CurrencyCLP: "$",
	CurrencyEUR: "€", CurrencyGBP: "£", CurrencyJPY: "¥", CurrencyCNY: "¥",
	CurrencyINR: "₹", CurrencyKRW: "₩", CurrencyILS: "₪", CurrencyRUB: "₽", CurrencyBRL: "R$",
}

// Code returns the ISO 4217 code, or "none".
func (c Currency) Code() string { return c.String() }

// Symbol returns the currency sign, falling back to the ISO code.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	if c == CurrencyNone {
		return ""
	}
	return c.String()
}

func (c Currency) String() string { return enumName("Currency", currencyCodes, int(c)) }

func (c Currency) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Currency) UnmarshalText(b []byte) error {
	i, err := parseEnumName("currency", currencyCodes, string(b))
	if err != nil {
		return err
	}
	*c = Currency(i)
	return nil
}

// NumberFormat selects how numeric values are rendered.
type NumberFormat int

const (
	NumberFormatNone NumberFormat = iota
	NumberFormatNumber
	NumberFormatCurrency
	NumberFormatPercent
)

var numberFormatNames = []string{"none", "NUMBER", "CURRENCY", "PERCENT"}

func (n NumberFormat) String() string { return enumName("NumberFormat", numberFormatNames, int(n)) }

func (n NumberFormat) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

func (n *NumberFormat) UnmarshalText(b []byte) error {
	i, err := parseEnumName("number format", numberFormatNames, string(b))
	if err != nil {
		return err
	}
	*n = NumberFormat(i)
	return nil
}

// DateFormat selects how date values are rendered.
type DateFormat int

const (
	DateFormatLocaleBased DateFormat = iota
	DateFormatMMMMDYYYY
	DateFormatMMMDYYYY
	DateFormatDMMMYYYY
	DateFormatYYYYMMDDHyphen
	DateFormatYYYYMMDDDot
	DateFormatDWWWWMMMMDYYYY
	DateFormatDWWWDDMMMYYYY
	DateFormatDWWWMMDDYYYY
	DateFormatMMMMD
	DateFormatDMMMM
)

var dateFormatNames = []string{
	"LOCALE_BASED", "MMMM_D_YYYY", "MMM_D_YYYY", "D_MMM_YYYY", "YYYY_MM_DD_HYPHEN", "YYYY_MM_DD_DOT",
	"DWWWW_MMMM_D_YYYY", "DWWW_DD_MMM_YYYY", "DWWW_MM_DD_YYYY", "MMMM_D", "D_MMMM",
}

// xlsxDateFormats maps each date format to an equivalent spreadsheet number format.
var xlsxDateFormats = []string{
	"yyyy-mm-dd", "mmmm d, yyyy", "mmm d, yyyy", "d mmm yyyy", "yyyy-mm-dd", "yyyy.mm.dd",
	"dddd, mmmm d, yyyy", "ddd, dd mmm yyyy", "ddd, mm/dd/yyyy", "mmmm d", "d mmmm",
}

func (d DateFormat) String() string { return enumName("DateFormat", dateFormatNames, int(d)) }

func (d DateFormat) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *DateFormat) UnmarshalText(b []byte) error {
	i, err := parseEnumName("date format", dateFormatNames, string(b))
	if err != nil {
		return err
	}
	*d = DateFormat(i)
	return nil
}

func enumName(kind string, names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%s(%d)", kind, i)
	}
	return names[i]
}

// parseEnumName matches a name case-insensitively. Spaces and hyphens are
// treated as underscores so "times new roman" and "YYYY-MM-DD-HYPHEN" work.
func parseEnumName(kind string, names []string, s string) (int, error) {
	want := normalizeEnumName(s)
	for i, n := range names {
		if normalizeEnumName(n) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

func normalizeEnumName(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
