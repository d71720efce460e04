package repository

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/teamforge/internal/domain/types"
)

func TestMemoryStore_EvictionReleasesIDs(t *testing.T) {
	Convey("Given a store bounded to three matches", t, func() {
		s := NewMemoryStore(WithHistorySize(3))

		Convey("When many more matches are saved", func() {
			for i := 0; i < 50; i++ {
				So(s.Save(context.Background(), types.Match{ID: fmt.Sprintf("m%02d", i)}), ShouldBeNil)
			}

			Convey("Then the history backing array does not keep evicted ids", func() {
				So(s.order, ShouldResemble, []string{"m47", "m48", "m49"})
				So(cap(s.order), ShouldBeLessThanOrEqualTo, 4)
				for _, id := range s.order[len(s.order):cap(s.order)] {
					So(id, ShouldBeEmpty)
				}
				So(s.byID, ShouldHaveLength, 3)
			})
		})
	})
}
