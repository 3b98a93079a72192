/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package category supports declaring groupings of response items, such as
// the palette lists a color belongs to.  A Datum may define one Category, and
// any Datum may be tagged with Categories defined elsewhere.
package category

import (
	"github.com/cri/cricolors/util"
)

const (
	categoryDefinedIDKey   = "category_defined_id"
	categoryDescriptionKey = "category_description"
	categoryDisplayNameKey = "category_display_name"
	categoryIDsKey         = "category_ids"
)

// Category is a named grouping.
type Category struct {
	id, displayName, description string
}

// New returns a new Category with the provided ID, display name, and
// description.
func New(id, displayName, description string) *Category {
	return &Category{
		id:          id,
		displayName: displayName,
		description: description,
	}
}

// ID returns the receiver's ID.
func (c *Category) ID() string {
	return c.id
}

// DisplayName returns the receiver's display name.
func (c *Category) DisplayName() string {
	return c.displayName
}

// Define annotates a Datum with the receiver's definition.  If several
// Categories are defined on one Datum, the last wins.
func (c *Category) Define() util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(categoryDefinedIDKey, c.id),
		util.StringProperty(categoryDisplayNameKey, c.displayName),
		util.StringProperty(categoryDescriptionKey, c.description),
	)
}

// Tag annotates a Datum as belonging to the receiver, in addition to any
// Categories it is already tagged with.
func (c *Category) Tag() util.PropertyUpdate {
	return util.StringsPropertyExtended(categoryIDsKey, c.id)
}

// Tag annotates a Datum as belonging to each of cats.  With no cats, it does
// nothing.
func Tag(cats ...*Category) util.PropertyUpdate {
	if len(cats) == 0 {
		return util.EmptyUpdate
	}
	ids := make([]string, len(cats))
	for idx, cat := range cats {
		ids[idx] = cat.id
	}
	return util.StringsPropertyExtended(categoryIDsKey, ids...)
}
