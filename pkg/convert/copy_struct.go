package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields from src into dst and returns dst
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}
