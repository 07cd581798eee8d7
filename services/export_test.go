package services

func (s *OrderService) SetCodeGenerator(fn func() (string, error)) { s.newCode = fn }

func (s *CustomerService) SetClock(c Clock) { s.now = c }

func (l *Ledger) SetClock(c Clock) { l.now = c }
