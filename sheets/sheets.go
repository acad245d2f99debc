// Package sheets reads food menus from and writes order reports to xlsx workbooks.
package sheets

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"food-marketplace-api/models"
)

// Food sheet columns, in order
var FoodHeader = []string{"name", "description", "category", "foodType", "readyTime", "price"}

// OrderHeader is the first row of an order export
var OrderHeader = []string{"orderId", "customerId", "status", "items", "totalAmount", "paidThrough", "readyTime", "orderDate", "remarks"}

// FoodRow is one parsed menu row. Line is the 1-based sheet row.
type FoodRow struct {
	Line        int
	Name        string
	Description string
	Category    string
	FoodType    string
	ReadyTime   int
	Price       decimal.Decimal
}

// ParseFoods reads the first sheet of a workbook. The header row is skipped,
// as is every row that is short or has an unparseable number; the line
// numbers of skipped rows are returned alongside the parsed ones.
func ParseFoods(r io.Reader) ([]FoodRow, []int, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid excel file: %w", err)
	}
	defer xlsx.Close()

	sheet := xlsx.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := xlsx.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	var (
		foods   []FoodRow
		skipped = []int{}
	)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		food, ok := parseFoodRow(row)
		if !ok {
			if !blank(row) {
				skipped = append(skipped, i+1)
			}
			continue
		}
		food.Line = i + 1
		foods = append(foods, food)
	}
	return foods, skipped, nil
}

func parseFoodRow(row []string) (FoodRow, bool) {
	if len(row) < len(FoodHeader) {
		return FoodRow{}, false
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return FoodRow{}, false
	}
	readyTime := 0
	if s := strings.TrimSpace(row[4]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return FoodRow{}, false
		}
		readyTime = n
	}
	price, err := decimal.NewFromString(strings.TrimSpace(row[5]))
	if err != nil {
		return FoodRow{}, false
	}
	return FoodRow{
		Name:        name,
		Description: strings.TrimSpace(row[1]),
		Category:    strings.TrimSpace(row[2]),
		FoodType:    strings.TrimSpace(row[3]),
		ReadyTime:   readyTime,
		Price:       price,
	}, true
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// WriteOrders renders orders into a single "Orders" sheet and writes the workbook to w
func WriteOrders(w io.Writer, orders []models.Order) error {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	const sheet = "Orders"
	if err := xlsx.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := setRow(xlsx, sheet, 1, OrderHeader); err != nil {
		return err
	}
	for i, o := range orders {
		row := []interface{}{
			o.OrderID,
			o.CustomerID,
			string(o.OrderStatus),
			describeItems(o.Items),
			o.TotalAmount.StringFixed(2),
			o.PaidThrough,
			o.ReadyTime,
			o.OrderDate.Format("2006-01-02 15:04"),
			o.Remarks,
		}
		if err := setRow(xlsx, sheet, i+2, row); err != nil {
			return err
		}
	}
	_, err := xlsx.WriteTo(w)
	return err
}

func setRow[T any](xlsx *excelize.File, sheet string, row int, values []T) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return xlsx.SetSheetRow(sheet, cell, &values)
}

func describeItems(items models.OrderItems) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s x%d", it.Food.Name, it.Unit)
	}
	return strings.Join(parts, ", ")
}
