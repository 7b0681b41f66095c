package uimodel

// Mask is a set of model flags, one bit per flag. The same type carries
// both watch interest (which flags an element depends on) and change
// announcements (which flags a committed transition touched).
//
// Mask 0 is legal on both sides: a watch mask of 0 keeps a registration
// alive without expressing interest, and a change mask of 0 dispatches
// nothing.
type Mask uint64

// Bit returns the mask with only flag i set.
// Indexes outside 0..63 yield the empty mask.
func Bit(i int) Mask {
	if i < 0 || i > 63 {
		return 0
	}
	return Mask(1) << uint(i)
}

// Overlaps reports whether m and c share at least one flag.
func (m Mask) Overlaps(c Mask) bool {
	return m&c != 0
}
