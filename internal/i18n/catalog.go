// Package i18n localises labels and messages using golang.org/x/text.
//
// Message keys are the English strings themselves, so the English locale
// needs no catalog entries: an untranslated key is used as its own format.
package i18n

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/logger"
)

// Interface messages that are not part of the domain.
const (
	MsgEnterHeight     = "Enter height (cm) [q to quit]: "
	MsgEnterWeight     = "Enter weight (kg): "
	MsgEnterNote       = "Note (optional, press Enter to skip): "
	MsgInvalidNumber   = "Please enter a valid number."
	MsgContinue        = "Continue? [y/N]: "
	MsgGoodbye         = "Goodbye."
	MsgError           = "Error: %s"
	MsgNoHistory       = "No measurements recorded yet"
	MsgNotEnoughData   = "At least two measurements are needed to draw a trend"
	MsgTrendTitle      = "BMI trend"
	MsgHistoryTitle    = "History"
	MsgHistoryCleared  = "History cleared."
	MsgConfirmClear    = "Really delete the entire history? [y/N]: "
	MsgCalculatorTitle = "BMI Calculator"
)

// japanese holds the Japanese catalog.
var japanese = map[string]string{
	domain.ReasonNotNumeric:  "身長と体重は数値で入力してください",
	domain.ReasonNotPositive: "身長と体重は正の数で入力してください",
	domain.ReasonHeightRange: "身長は100cm〜250cmの範囲で入力してください",
	domain.ReasonWeightRange: "体重は20kg〜300kgの範囲で入力してください",

	domain.MessageAtIdeal: "理想的な体重です！",
	domain.MessageLose:    "理想体重まで %.1fkg の減量が目標です",
	domain.MessageGain:    "理想体重まで %.1fkg の増量が目標です",

	"Underweight":       "低体重",
	"Normal weight":     "普通体重",
	"Overweight":        "過体重",
	"Obese (class I)":   "肥満(1度)",
	"Obese (class II)":  "肥満(2度)",
	"Obese (class III)": "肥満(3度)",

	"Consider gaining some weight":                           "体重を増やすことを検討してください",
	"Keep maintaining a healthy weight":                      "健康的な体重を維持してください",
	"Moderate exercise and diet management are recommended": "適度な運動と食事管理をお勧めします",
	"Consult a doctor and consider improving your lifestyle": "医師に相談し、生活習慣の改善を検討してください",
	"Consult a doctor and consider active treatment":         "医師に相談し、積極的な治療を検討してください",
	"Treatment by a specialist is required":                  "専門医による治療が必要です",

	domain.FormatHeader:    "=== BMI計算結果 ===",
	domain.FormatHeight:    "身長: %scm",
	domain.FormatWeight:    "体重: %skg",
	domain.FormatBMI:       "BMI: %.1f",
	domain.FormatCategory:  "判定: %s",
	domain.FormatAdvice:    "アドバイス: %s",
	domain.FormatMeasured:  "測定日時: %s",
	domain.FormatNote:      "メモ: %s",
	domain.FormatIdeal:     "理想体重: %skg",
	domain.FormatProgress:  "カテゴリ内進捗: %.1f%%",
	domain.FormatTargetBMI: "目標BMI: %.1f",

	MsgEnterHeight:     "身長を入力してください (cm) [終了: q]: ",
	MsgEnterWeight:     "体重を入力してください (kg): ",
	MsgEnterNote:       "メモ（任意、Enter でスキップ）: ",
	MsgInvalidNumber:   "有効な数値を入力してください。",
	MsgContinue:        "続けますか？ [y/N]: ",
	MsgGoodbye:         "終了します。",
	MsgError:           "エラー: %s",
	MsgNoHistory:       "まだ測定記録がありません",
	MsgNotEnoughData:   "グラフ表示には2つ以上の測定記録が必要です",
	MsgTrendTitle:      "BMI変化トレンド",
	MsgHistoryTitle:    "履歴",
	MsgHistoryCleared:  "履歴をクリアしました。",
	MsgConfirmClear:    "本当に履歴をすべて削除しますか？ [y/N]: ",
	MsgCalculatorTitle: "BMI計算機",
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register loads the translations into the x/text default catalog.
// Only the first call does any work; later calls return its result.
func Register() error {
	registerOnce.Do(func() {
		registerErr = register(message.SetString, language.Japanese, japanese)
	})
	return registerErr
}

func register(set func(language.Tag, string, string) error, tag language.Tag, messages map[string]string) error {
	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := set(tag, key, messages[key]); err != nil {
			return fmt.Errorf("register %s message %q: %w", tag, key, err)
		}
	}
	return nil
}

// Tag returns the language tag for a locale, defaulting to English.
func Tag(locale domain.Locale) language.Tag {
	switch locale {
	case domain.LocaleJapanese:
		return language.Japanese
	default:
		return language.English
	}
}

// Printer returns a message printer for locale.
func Printer(locale domain.Locale) *message.Printer {
	if err := Register(); err != nil {
		logger.Warn("translations unavailable: %v", err)
	}
	return message.NewPrinter(Tag(locale))
}

// Translator returns a domain.Translator backed by the locale's printer.
func Translator(locale domain.Locale) domain.Translator {
	p := Printer(locale)
	return func(key string, args ...any) string {
		return p.Sprintf(key, args...)
	}
}

// Keys returns every translated key, sorted. Useful for catalog checks.
func Keys() []string {
	keys := make([]string, 0, len(japanese))
	for key := range japanese {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
