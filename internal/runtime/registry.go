package runtime

import (
	"fmt"

	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
)

// ResolveContainers walks up from step to its enclosing scrolly instance and
// down into that instance's sticky panel. Resolution is always instance
// scoped: a page may host several independent instances.
//
// Missing pieces are left nil and reported as an error; callers must not
// drive an instance whose containers are incomplete.
func ResolveContainers(step *dom.Element) (*dom.Element, Containers, error) {
	var c Containers

	instance := step.Closest(dom.ClassInstance)
	if instance == nil {
		return nil, c, domain.ErrNoInstance
	}

	sticky := instance.Find(dom.ClassSticky)
	if sticky == nil {
		return instance, c, fmt.Errorf("%w: no .%s in instance %q", domain.ErrIncompleteSticky, dom.ClassSticky, instance.ID())
	}

	c.Image = sticky.Find(dom.ClassImageContainer)
	c.Map = sticky.Find(dom.ClassMapContainer)
	c.Video = sticky.Find(dom.ClassVideoContainer)
	if !c.Complete() {
		return instance, c, fmt.Errorf("%w: instance %q", domain.ErrIncompleteSticky, instance.ID())
	}
	return instance, c, nil
}
