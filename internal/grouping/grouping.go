// Package grouping folds the flat normalized cart into the structure the
// order emails present: one consolidated row per catalog book with its
// free-gift sub-rows, followed by ungrouped accessory lines. Grouping is
// presentation only; pricing always runs on the flat list.
package grouping

import (
	"sort"
	"strconv"

	"github.com/charbelabdallah/bookstore-backend/internal/cartid"
	"github.com/charbelabdallah/bookstore-backend/internal/models"
	"github.com/shopspring/decimal"
)

// BookGroup is all cart lines for one catalog book, merged. Two separate
// add-to-cart bundles of the same book collapse into one group with the
// summed quantity and every bundle's gift attached.
type BookGroup struct {
	BaseID    string
	Title     string
	UnitPrice decimal.Decimal
	Image     string
	Qty       int
	Gifts     []GiftRow
}

// GiftRow is an aggregated free-gift display row. Identical gift titles
// attached to the same book merge with summed quantity.
type GiftRow struct {
	Title string
	Image string
	Qty   int
}

// Group splits normalized lines into sorted book groups and accessory
// lines. Book groups keep the display fields of the first line seen per
// BaseId and are sorted by BaseId numerically. Gift lines whose parent
// matches no book group are dropped. Accessory lines stay in submission
// order and are never merged.
func Group(lines []models.OrderLine) ([]BookGroup, []models.OrderLine) {
	groups := make([]*BookGroup, 0)
	byBase := make(map[string]*BookGroup)

	for _, line := range lines {
		if !isBookLine(line) {
			continue
		}
		base := cartid.BaseID(line.ID)
		g, ok := byBase[base]
		if !ok {
			g = &BookGroup{
				BaseID:    base,
				Title:     line.Title,
				UnitPrice: line.Price,
				Image:     line.Image,
			}
			byBase[base] = g
			groups = append(groups, g)
		}
		g.Qty += line.Quantity
	}

	giftRows := make(map[string]map[string]*GiftRow)
	for _, line := range lines {
		if !line.IsGift || line.ParentID == "" {
			continue
		}
		base := cartid.BaseID(line.ParentID)
		if _, ok := byBase[base]; !ok {
			continue
		}
		rows := giftRows[base]
		if rows == nil {
			rows = make(map[string]*GiftRow)
			giftRows[base] = rows
		}
		row, ok := rows[line.Title]
		if !ok {
			row = &GiftRow{Title: line.Title, Image: line.Image}
			rows[line.Title] = row
		}
		row.Qty += line.Quantity
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return lessBaseID(groups[i].BaseID, groups[j].BaseID)
	})

	result := make([]BookGroup, len(groups))
	for i, g := range groups {
		result[i] = *g
		result[i].Gifts = sortedGifts(giftRows[g.BaseID])
	}

	accessories := make([]models.OrderLine, 0)
	for _, line := range lines {
		if isAccessoryLine(line) {
			accessories = append(accessories, line)
		}
	}

	return result, accessories
}

// isBookLine reports whether a line counts as a catalog book: not a gift,
// kind book, and a purely numeric BaseId.
func isBookLine(line models.OrderLine) bool {
	return !line.IsGift &&
		line.Kind == models.KindBook &&
		cartid.Parse(line.ID).NumericBase()
}

// isAccessoryLine is the complement among non-gift lines.
func isAccessoryLine(line models.OrderLine) bool {
	return !line.IsGift && !isBookLine(line)
}

// lessBaseID orders numerically when both sides parse as integers and
// lexicographically otherwise.
func lessBaseID(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}

func sortedGifts(rows map[string]*GiftRow) []GiftRow {
	if len(rows) == 0 {
		return nil
	}
	gifts := make([]GiftRow, 0, len(rows))
	for _, row := range rows {
		gifts = append(gifts, *row)
	}
	sort.Slice(gifts, func(i, j int) bool {
		return gifts[i].Title < gifts[j].Title
	})
	return gifts
}
