package exit

import (
	"strings"
	"time"
)

// AssetField は返却物の更新対象フィールドです。
type AssetField string

const (
	AssetFieldName         AssetField = "name"
	AssetFieldCategory     AssetField = "category"
	AssetFieldSerialNumber AssetField = "serialNumber"
	AssetFieldStatus       AssetField = "status"
	AssetFieldRemarks      AssetField = "remarks"
)

var assetFieldAliases = map[string]AssetField{
	"name":          AssetFieldName,
	"item":          AssetFieldName,
	"itemname":      AssetFieldName,
	"item_name":     AssetFieldName,
	"category":      AssetFieldCategory,
	"serialnumber":  AssetFieldSerialNumber,
	"serial_number": AssetFieldSerialNumber,
	"serial":        AssetFieldSerialNumber,
	"status":        AssetFieldStatus,
	"remarks":       AssetFieldRemarks,
}

// ParseAssetField はフィールド名を正規化します。
func ParseAssetField(raw string) (AssetField, error) {
	field, ok := assetFieldAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", ErrInvalidAssetField
	}
	return field, nil
}

// ParseAssetCategory は大文字小文字を無視して分類を解釈します。
func ParseAssetCategory(raw string) (AssetCategory, error) {
	for _, c := range []AssetCategory{AssetCategoryHardware, AssetCategorySoftware, AssetCategoryAccess, AssetCategoryDocuments, AssetCategoryOther} {
		if strings.EqualFold(string(c), strings.TrimSpace(raw)) {
			return c, nil
		}
	}
	return "", ErrInvalidAssetCategory
}

// ParseAssetStatus は大文字小文字を無視して返却状況を解釈します。
func ParseAssetStatus(raw string) (AssetStatus, error) {
	for _, s := range []AssetStatus{AssetStatusPending, AssetStatusReturned, AssetStatusLost, AssetStatusDamaged} {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, nil
		}
	}
	return "", ErrInvalidAssetStatus
}

// AddAsset は既定値(Hardware / Pending)の返却物を末尾に追加します。
func AddAsset(req *ExitRequest, actor Actor, now time.Time) (*ExitRequest, error) {
	if err := guardChecklist(req, actor); err != nil {
		return nil, err
	}

	next := req.Clone()
	next.Assets = append(next.Assets, AssetItem{
		Category: AssetCategoryHardware,
		Status:   AssetStatusPending,
	})
	next.UpdatedAt = now
	return next, nil
}

// UpdateAssetField は1件の返却物の1フィールドを更新します。
func UpdateAssetField(req *ExitRequest, actor Actor, index int, field AssetField, value string, now time.Time) (*ExitRequest, error) {
	if err := guardChecklist(req, actor); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(req.Assets) {
		return nil, ErrAssetNotFound
	}

	next := req.Clone()
	item := &next.Assets[index]
	switch field {
	case AssetFieldName:
		item.Name = strings.TrimSpace(value)
	case AssetFieldCategory:
		category, err := ParseAssetCategory(value)
		if err != nil {
			return nil, err
		}
		item.Category = category
	case AssetFieldSerialNumber:
		item.SerialNumber = strings.TrimSpace(value)
	case AssetFieldStatus:
		status, err := ParseAssetStatus(value)
		if err != nil {
			return nil, err
		}
		item.Status = status
	case AssetFieldRemarks:
		item.Remarks = strings.TrimSpace(value)
	default:
		return nil, ErrInvalidAssetField
	}
	next.UpdatedAt = now
	return next, nil
}

// RemoveAsset は指定位置の返却物を削除します。
func RemoveAsset(req *ExitRequest, actor Actor, index int, now time.Time) (*ExitRequest, error) {
	if err := guardChecklist(req, actor); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(req.Assets) {
		return nil, ErrAssetNotFound
	}

	next := req.Clone()
	next.Assets = append(next.Assets[:index:index], next.Assets[index+1:]...)
	next.UpdatedAt = now
	return next, nil
}

func guardChecklist(req *ExitRequest, actor Actor) error {
	if !actor.canEdit(req) {
		return ErrForbidden
	}
	return guardDraft(req)
}

func normalizeAssets(items []AssetItem) ([]AssetItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]AssetItem, 0, len(items))
	for _, item := range items {
		normalized := AssetItem{
			Name:         strings.TrimSpace(item.Name),
			SerialNumber: strings.TrimSpace(item.SerialNumber),
			Remarks:      strings.TrimSpace(item.Remarks),
			Category:     AssetCategoryHardware,
			Status:       AssetStatusPending,
		}
		if item.Category != "" {
			c, err := ParseAssetCategory(string(item.Category))
			if err != nil {
				return nil, err
			}
			normalized.Category = c
		}
		if item.Status != "" {
			s, err := ParseAssetStatus(string(item.Status))
			if err != nil {
				return nil, err
			}
			normalized.Status = s
		}
		out = append(out, normalized)
	}
	return out, nil
}
