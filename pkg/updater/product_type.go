package updater

import (
	"github.com/mesh-intelligence/catalog/pkg/types"
)

const targetProductType = "product type"

var _ ObjectUpdater = (*ProductTypeUpdater)(nil)

// ProductTypeUpdater updates a *types.ProductType. Recognized fields:
//
//	code    scalar
//	title   scalar or null; null resets the title to the code
//	groups  list of scalar group codes; missing groups are added, none removed
type ProductTypeUpdater struct {
	fields fieldTable[*types.ProductType]
}

func NewProductTypeUpdater() *ProductTypeUpdater {
	return &ProductTypeUpdater{
		fields: fieldTable[*types.ProductType]{
			target: targetProductType,
			rules: map[string]fieldRule[*types.ProductType]{
				"code":   {check: expectScalar, apply: setProductTypeCode},
				"title":  {check: expectScalarOrNull, apply: setProductTypeTitle},
				"groups": {check: expectScalarList("a group code is not a scalar"), apply: addProductTypeGroups},
			},
		},
	}
}

// Update applies fields to object, which must be a *types.ProductType.
func (u *ProductTypeUpdater) Update(object any, fields Fields, opts Options) error {
	pt, ok := object.(*types.ProductType)
	if !ok || pt == nil {
		return ObjectExpected(object, "*types.ProductType")
	}
	return u.fields.update(pt, fields, opts)
}

// Fields returns the recognized field names.
func (u *ProductTypeUpdater) Fields() []string {
	return u.fields.names()
}

func setProductTypeCode(pt *types.ProductType, value any) error {
	pt.SetCode(scalarString(value))
	return nil
}

func setProductTypeTitle(pt *types.ProductType, value any) error {
	if value == nil {
		pt.SetTitle("")
		return nil
	}
	pt.SetTitle(scalarString(value))
	return nil
}

func addProductTypeGroups(pt *types.ProductType, value any) error {
	codes, _ := asList(value)
	for _, v := range codes {
		code := scalarString(v)
		if _, err := pt.GetGroup(code); err == nil {
			continue
		}
		if _, err := pt.AddGroup(code, ""); err != nil {
			return ValidEntityCodeExpected("groups", "group code", err.Error(), actionUpdate, targetProductType, code)
		}
	}
	return nil
}
