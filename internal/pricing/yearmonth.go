package pricing

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidYearMonth = errors.New("月份格式错误，应为 YYYY-MM")

// YearMonth 日历月份，使用 year*12+month 的整数运算计算月份差
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf 取时间所在的日历月份
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth 解析 YYYY-MM 字符串
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, ErrInvalidYearMonth
	}
	return YearMonthOf(t), nil
}

// Index 月份序号
func (ym YearMonth) Index() int {
	return ym.Year*12 + int(ym.Month)
}

// AddMonths 向后（或向前）偏移 n 个月
func (ym YearMonth) AddMonths(n int) YearMonth {
	idx := ym.Index() - 1 + n
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	return YearMonth{Year: year, Month: time.Month(month + 1)}
}

// Before 是否早于另一个月份
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Index() < other.Index()
}

// MonthsSince 从 start 到 ym 的 1 起始计数，start 当月为 1
func (ym YearMonth) MonthsSince(start YearMonth) int {
	return ym.Index() - start.Index() + 1
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Label 表格展示用的月份名，如 Dec/2025
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%s/%d", ym.Month.String()[:3], ym.Year)
}

// Window 以 today 为基准的 13 个月视图：上一年 12 月到今年 12 月
func Window(today time.Time) []YearMonth {
	first := YearMonth{Year: today.Year() - 1, Month: time.December}
	months := make([]YearMonth, 13)
	for i := range months {
		months[i] = first.AddMonths(i)
	}
	return months
}
