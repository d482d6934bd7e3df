package smartsheet

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_DefaultEncodesToEmptyFields(t *testing.T) {
	s := DefaultFormat().String()
	assert.Equal(t, ",,,,,,,,,,,,,,,,", s)
	assert.Equal(t, 16, strings.Count(s, ","))
}

func TestFormat_ServiceDefaultDecodesToDefault(t *testing.T) {
	f := ParseFormat(defaultFormatString)
	assert.True(t, f.IsDefault())
	assert.Equal(t, FontSize10, f.FontSize)
	assert.Equal(t, 10, f.FontSize.Points())
}

func TestFormat_ParseAllFields(t *testing.T) {
	f := ParseFormat("3,3,1,1,1,1,2,3,27,22,1,13,2,1,2,1,4")

	assert.Equal(t, FontTimesNewRoman, f.FontFamily)
	assert.Equal(t, FontSize12, f.FontSize)
	assert.True(t, f.Bold)
	assert.True(t, f.Italic)
	assert.True(t, f.Underline)
	assert.True(t, f.Strikethrough)
	assert.Equal(t, HorizontalAlignCenter, f.HorizontalAlign)
	assert.Equal(t, VerticalAlignBottom, f.VerticalAlign)
	assert.Equal(t, ColorRedDark, f.TextColor)
	assert.Equal(t, ColorGreen, f.BackgroundColor)
	assert.Equal(t, ColorBlack, f.TaskbarColor)
	assert.Equal(t, CurrencyUSD, f.Currency)
	assert.Equal(t, 2, f.DecimalCount)
	assert.True(t, f.ThousandsSeparator)
	assert.Equal(t, NumberFormatCurrency, f.NumberFormat)
	assert.True(t, f.TextWrap)
	assert.Equal(t, DateFormatYYYYMMDDHyphen, f.DateFormat)
}

func TestFormat_RoundTrip(t *testing.T) {
	formats := []Format{
		{},
		{Bold: true},
		{FontSize: FontSize8},
		{FontSize: FontSize36, FontFamily: FontRoboto},
		{TextColor: ColorBeigeDarker, BackgroundColor: ColorYellowLight, TaskbarColor: ColorTransparent},
		{Currency: CurrencySGD, DecimalCount: 4, NumberFormat: NumberFormatNumber, ThousandsSeparator: true},
		{NumberFormat: NumberFormatPercent, TextWrap: true, DateFormat: DateFormatDMMMM},
		{
			FontFamily: FontTahoma, FontSize: FontSize20, Bold: true, Italic: true, Underline: true,
			Strikethrough: true, HorizontalAlign: HorizontalAlignRight, VerticalAlign: VerticalAlignTop,
			TextColor: ColorWhite, BackgroundColor: ColorBlueDark, TaskbarColor: ColorPurple,
			Currency: CurrencyEUR, DecimalCount: 3, ThousandsSeparator: true,
			NumberFormat: NumberFormatCurrency, TextWrap: true, DateFormat: DateFormatDWWWDDMMMYYYY,
		},
	}
	for _, f := range formats {
		s := f.String()
		assert.Len(t, strings.Split(s, ","), formatFieldCount, s)
		assert.Equal(t, f, ParseFormat(s), s)
	}
}

func TestFormat_EncodeNonDefaultFields(t *testing.T) {
	assert.Equal(t, ",,1,,,,,,,,,,,,,,", Format{Bold: true}.String())
	assert.Equal(t, ",3,,,,,,,,,,,,,,,", Format{FontSize: FontSize12}.String())
	assert.Equal(t, ",0,,,,,,,,,,,,,,,", Format{FontSize: FontSize8}.String())
	assert.Equal(t, ",,,,,,,,,,,13,2,,,,", Format{Currency: CurrencyUSD, DecimalCount: 2}.String())
}

func TestFormat_WrongFieldCountFallsBackToDefault(t *testing.T) {
	for _, s := range []string{"", "bogus", ",,1", ",,1,,,,,,,,,,,,,,,,", strings.Repeat(",", 20)} {
		assert.True(t, ParseFormat(s).IsDefault(), "%q", s)
	}
}

func TestFormat_OutOfRangeValuesTakeFieldDefault(t *testing.T) {
	f := ParseFormat("99,99,1,,,,7,-1,400,,,99,x,,9,,99")
	assert.Equal(t, Format{Bold: true}, f)
}

func TestFormat_NormalizePartial(t *testing.T) {
	partial := Format{Italic: true, HorizontalAlign: 42}
	assert.Equal(t, Format{Italic: true}, partial.Normalize())
}

func TestCellFormat_ApplyDefaultFormat(t *testing.T) {
	colDefault := Format{Bold: true, BackgroundColor: ColorYellowLight}
	cf := &CellFormat{Format: Format{Italic: true}, columnDefault: colDefault}

	cf.ApplyDefaultFormat()
	assert.Equal(t, colDefault, cf.Format)
	assert.Equal(t, colDefault, cf.ColumnDefault())
}

func TestFormat_EnumNames(t *testing.T) {
	var ff FontFamily
	require.NoError(t, ff.UnmarshalText([]byte("times new roman")))
	assert.Equal(t, FontTimesNewRoman, ff)

	var fs FontSize
	require.NoError(t, fs.UnmarshalText([]byte("14")))
	assert.Equal(t, FontSize14, fs)
	assert.Equal(t, 14, fs.Points())

	var c Color
	require.NoError(t, c.UnmarshalText([]byte("red_dark")))
	assert.Equal(t, ColorRedDark, c)
	require.NoError(t, c.UnmarshalText([]byte("#2d60bd")))
	assert.Equal(t, ColorBlueDark, c)
	assert.Equal(t, "#2D60BD", c.Hex())
	assert.Empty(t, ColorAutomatic.Hex())
	assert.Empty(t, ColorTransparent.Hex())

	var cur Currency
	require.NoError(t, cur.UnmarshalText([]byte("eur")))
	assert.Equal(t, CurrencyEUR, cur)
	assert.Equal(t, "€", cur.Symbol())
	assert.Equal(t, "CHF", CurrencyCHF.Symbol())

	var d DateFormat
	require.NoError(t, d.UnmarshalText([]byte("YYYY-MM-DD-HYPHEN")))
	assert.Equal(t, DateFormatYYYYMMDDHyphen, d)

	assert.Error(t, c.UnmarshalText([]byte("mauve")))
	assert.Equal(t, "Color(99)", Color(99).String())
}

func TestFormat_JSONUsesNames(t *testing.T) {
	data, err := json.Marshal(Format{Bold: true, TextColor: ColorRed, FontSize: FontSize16})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"textColor":"RED"`)
	assert.Contains(t, string(data), `"fontSize":"16"`)

	var f Format
	require.NoError(t, json.Unmarshal([]byte(`{"italic":true,"currency":"GBP","horizontalAlign":"right"}`), &f))
	assert.Equal(t, Format{Italic: true, Currency: CurrencyGBP, HorizontalAlign: HorizontalAlignRight}, f)
}
