package core

import (
	"github.com/najoast/sngofmt/typeinfo"
)

// Uniform names of the runtime types.
const (
	NameAtom     = "@atom"
	NameNode     = "@node"
	NameAddr     = "@addr"
	NameActor    = "@actor"
	NameGroup    = "@group"
	NameChannel  = "@channel"
	NameHeader   = "@header"
	NameTuple    = "@<>"
	NameObject   = "@obj"
	NameActorID  = "@aid"
	NameMsgID    = "@mid"
	NamePriority = "@prio"
)

func init() {
	if err := Announce(typeinfo.Default); err != nil {
		panic(err)
	}
}

// Announce creates the handles of the runtime types in r. It does not
// attach formatters.
func Announce(r *typeinfo.Registry) error {
	steps := []func() error{
		announce[Atom](r, NameAtom),
		announce[NodeID](r, NameNode),
		announce[ActorAddr](r, NameAddr),
		announce[ActorRef](r, NameActor),
		announce[Group](r, NameGroup),
		announce[Channel](r, NameChannel),
		announce[MessageHeader](r, NameHeader),
		announce[Tuple](r, NameTuple),
		announce[Object](r, NameObject),
		announce[ActorID](r, NameActorID),
		announce[MessageID](r, NameMsgID),
		announce[Priority](r, NamePriority),
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func announce[T any](r *typeinfo.Registry, name string) func() error {
	return func() error {
		_, err := typeinfo.Announce[T](r, name)
		return err
	}
}
