// Package dump は外部の銘柄リファレンスダンプを読み込みます。
package dump

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Record はダンプの1レコードです。ティッカーシンボルと会社名の2フィールドのみが必須です。
type Record struct {
	ActSymbol   string `json:"ACT Symbol"`
	CompanyName string `json:"Company Name"`
}

// ParseJSON はレコードのJSON配列を読み込みます。順序は保持し、重複排除は行いません。
func ParseJSON(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode dump json: %w", err)
	}
	return records, nil
}

// ParseCSV はヘッダー行付きCSVから同じ2カラムを読み込みます。
// "ACT Symbol" と "Company Name" のカラムが両方存在しない場合はエラーを返します。
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dump csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dump csv has no header row")
	}

	// ヘッダー名からカラム位置を引く
	headerIndex := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		headerIndex[strings.TrimSpace(h)] = i
	}
	symIdx, ok := headerIndex["ACT Symbol"]
	if !ok {
		return nil, fmt.Errorf(`dump csv is missing the "ACT Symbol" column`)
	}
	nameIdx, ok := headerIndex["Company Name"]
	if !ok {
		return nil, fmt.Errorf(`dump csv is missing the "Company Name" column`)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{}
		if symIdx < len(row) {
			rec.ActSymbol = strings.TrimSpace(row[symIdx])
		}
		if nameIdx < len(row) {
			rec.CompanyName = strings.TrimSpace(row[nameIdx])
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseFile は拡張子からフォーマットを判別してダンプファイルを読み込みます。
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseJSON(f)
	case ".csv":
		return ParseCSV(f)
	default:
		return nil, fmt.Errorf("unsupported dump format %q", ext)
	}
}
