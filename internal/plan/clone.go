package plan

// The solver and rule engine return new values instead of mutating their
// inputs. These typed clones replace serialize-then-parse snapshots so that
// ownership stays explicit.

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	out := s
	if s.Weight != nil {
		w := *s.Weight
		out.Weight = &w
	}
	if s.RestSeconds != nil {
		r := *s.RestSeconds
		out.RestSeconds = &r
	}
	if s.Effort != nil {
		e := *s.Effort
		out.Effort = &e
	}
	return out
}

// Clone returns a deep copy of the exercise.
func (e Exercise) Clone() Exercise {
	out := e
	out.Sets = make([]Set, len(e.Sets))
	for i, set := range e.Sets {
		out.Sets[i] = set.Clone()
	}
	return out
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := b
	out.Exercises = make([]Exercise, len(b.Exercises))
	for i, ex := range b.Exercises {
		out.Exercises[i] = ex.Clone()
	}
	return out
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	out := d
	if d.Tags != nil {
		out.Tags = make([]Tag, len(d.Tags))
		copy(out.Tags, d.Tags)
	}
	out.Blocks = make([]Block, len(d.Blocks))
	for i, block := range d.Blocks {
		out.Blocks[i] = block.Clone()
	}
	return out
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	if s.Tags != nil {
		out.Tags = make([]string, len(s.Tags))
		copy(out.Tags, s.Tags)
	}
	return out
}

// Clone returns a deep copy of the day plan.
func (p DayPlan) Clone() DayPlan {
	out := DayPlan{
		Sessions: make([]Session, len(p.Sessions)),
		Tags:     nil,
	}
	if p.Tags != nil {
		out.Tags = make([]string, len(p.Tags))
		copy(out.Tags, p.Tags)
	}
	for i, sess := range p.Sessions {
		out.Sessions[i] = sess.Clone()
	}
	return out
}

// Clone returns a deep copy of the week plan.
func (w WeekPlan) Clone() WeekPlan {
	if w == nil {
		return nil
	}
	out := make(WeekPlan, len(w))
	for key, day := range w {
		out[key] = day.Clone()
	}
	return out
}
