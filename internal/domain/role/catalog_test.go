package role_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/scout/internal/domain/attribute"
	"github.com/okian/scout/internal/domain/role"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultCatalog(t *testing.T) {
	Convey("Given the bundled catalog", t, func() {
		cat, err := role.Default()

		Convey("Then it decodes and is non-empty", func() {
			So(err, ShouldBeNil)
			So(cat.Len(), ShouldBeGreaterThan, 20)
		})

		Convey("Then known roles resolve by code", func() {
			afa, ok := cat.Get("afa")
			So(ok, ShouldBeTrue)
			So(afa.Name, ShouldEqual, "Advanced Forward Attack")
			So(afa.Weights[attribute.Fin], ShouldEqual, 5)

			gkd, ok := cat.Get("gkd")
			So(ok, ShouldBeTrue)
			So(gkd.Weights[attribute.Ref], ShouldEqual, 5)
		})

		Convey("Then unknown codes do not resolve", func() {
			_, ok := cat.Get("nope")
			So(ok, ShouldBeFalse)
		})

		Convey("Then iteration order is the file order", func() {
			roles := cat.Roles()
			So(roles[0].Code, ShouldEqual, "gkd")
			So(roles[len(roles)-1].Code, ShouldEqual, "afa")
		})
	})
}

func TestCatalogDecoding(t *testing.T) {
	Convey("Given a catalog document", t, func() {
		data := []byte(`[
			{"Role": "First", "RoleCode": "one", "Fin": 5, "Pac": 3},
			{"Role": "Dup", "RoleCode": "one", "Fin": 1},
			{"Role": "Second", "RoleCode": "two", "Tck": 4, "note": "stray"}
		]`)

		Convey("When decoded", func() {
			cat, err := role.NewCatalog(data)
			So(err, ShouldBeNil)

			Convey("Then a duplicated code keeps the first occurrence", func() {
				So(cat.Len(), ShouldEqual, 2)
				one, _ := cat.Get("one")
				So(one.Name, ShouldEqual, "First")
				So(one.Weights[attribute.Fin], ShouldEqual, 5)
			})

			Convey("Then non-numeric stray fields are ignored", func() {
				two, _ := cat.Get("two")
				So(two.Weights[attribute.Tck], ShouldEqual, 4)
				_, hasNote := two.Weights[attribute.Key("note")]
				So(hasNote, ShouldBeFalse)
			})
		})

		Convey("When the document is malformed", func() {
			_, err := role.NewCatalog([]byte(`{"not": "an array"}`))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRoleJSONRoundTrip(t *testing.T) {
	Convey("Given a role", t, func() {
		r := role.Role{
			Code: "afa",
			Name: "Advanced Forward Attack",
			Weights: map[attribute.Key]float64{
				attribute.Fin: 5,
				attribute.Pac: 3,
				attribute.Acc: 2,
			},
		}

		Convey("When marshalled and unmarshalled", func() {
			data, err := json.Marshal(r)
			So(err, ShouldBeNil)

			var back role.Role
			So(json.Unmarshal(data, &back), ShouldBeNil)

			Convey("Then the flat record shape survives", func() {
				So(back.Code, ShouldEqual, r.Code)
				So(back.Name, ShouldEqual, r.Name)
				So(back.Weights, ShouldResemble, r.Weights)
			})
		})
	})
}

func TestSelect(t *testing.T) {
	Convey("Given the bundled catalog", t, func() {
		cat, err := role.Default()
		So(err, ShouldBeNil)

		Convey("When selecting a mix of known and unknown codes", func() {
			sel := cat.Select([]string{"afa", "nope", "gkd"})

			Convey("Then known roles come back in request order", func() {
				So(len(sel), ShouldEqual, 2)
				So(sel[0].Code, ShouldEqual, "afa")
				So(sel[1].Code, ShouldEqual, "gkd")
			})
		})
	})
}
