package problem

import "github.com/rwcarlsen/optimum"

// Cost calls w.Problem.Cost, counting one CapCost evaluation. O must
// implement CostFunction[P, F]; solvers express this as a type bound at
// their own declaration site.
func Cost[O CostFunction[P, F], P any, F optimum.Float](w *Wrapper[O], param P) (F, error) {
	v, err := any(w.Problem).(CostFunction[P, F]).Cost(param)
	w.addCount(optimum.CapCost, 1)
	return v, err
}

// BulkCost evaluates params, using the problem's own BulkCost when it
// implements BulkCostFunction[P, F], else falling back to sequential (or
// parallel, per Wrapper.Parallel and Parallelizer) scalar calls. The
// counter is incremented by len(params) regardless of path taken.
func BulkCost[O CostFunction[P, F], P any, F optimum.Float](w *Wrapper[O], params []P) ([]F, error) {
	var out []F
	var err error
	if bc, ok := any(w.Problem).(BulkCostFunction[P, F]); ok {
		out, err = bc.BulkCost(params)
	} else {
		parallel := w.Parallel && parallelize(any(w.Problem), optimum.CapCost)
		out, err = dispatch(parallel, params, func(p P) (F, error) {
			return any(w.Problem).(CostFunction[P, F]).Cost(p)
		})
	}
	w.addCount(optimum.CapCost, uint64(len(params)))
	return out, err
}

func Grad[O Gradient[P, G], P, G any](w *Wrapper[O], param P) (G, error) {
	v, err := any(w.Problem).(Gradient[P, G]).Gradient(param)
	w.addCount(optimum.CapGradient, 1)
	return v, err
}

func BulkGrad[O Gradient[P, G], P, G any](w *Wrapper[O], params []P) ([]G, error) {
	var out []G
	var err error
	if bg, ok := any(w.Problem).(BulkGradient[P, G]); ok {
		out, err = bg.BulkGradient(params)
	} else {
		parallel := w.Parallel && parallelize(any(w.Problem), optimum.CapGradient)
		out, err = dispatch(parallel, params, func(p P) (G, error) {
			return any(w.Problem).(Gradient[P, G]).Gradient(p)
		})
	}
	w.addCount(optimum.CapGradient, uint64(len(params)))
	return out, err
}

func Jac[O Jacobian[P, J], P, J any](w *Wrapper[O], param P) (J, error) {
	v, err := any(w.Problem).(Jacobian[P, J]).Jacobian(param)
	w.addCount(optimum.CapJacobian, 1)
	return v, err
}

func BulkJac[O Jacobian[P, J], P, J any](w *Wrapper[O], params []P) ([]J, error) {
	var out []J
	var err error
	if bj, ok := any(w.Problem).(BulkJacobian[P, J]); ok {
		out, err = bj.BulkJacobian(params)
	} else {
		parallel := w.Parallel && parallelize(any(w.Problem), optimum.CapJacobian)
		out, err = dispatch(parallel, params, func(p P) (J, error) {
			return any(w.Problem).(Jacobian[P, J]).Jacobian(p)
		})
	}
	w.addCount(optimum.CapJacobian, uint64(len(params)))
	return out, err
}

func Hess[O Hessian[P, H], P, H any](w *Wrapper[O], param P) (H, error) {
	v, err := any(w.Problem).(Hessian[P, H]).Hessian(param)
	w.addCount(optimum.CapHessian, 1)
	return v, err
}

func BulkHess[O Hessian[P, H], P, H any](w *Wrapper[O], params []P) ([]H, error) {
	var out []H
	var err error
	if bh, ok := any(w.Problem).(BulkHessian[P, H]); ok {
		out, err = bh.BulkHessian(params)
	} else {
		parallel := w.Parallel && parallelize(any(w.Problem), optimum.CapHessian)
		out, err = dispatch(parallel, params, func(p P) (H, error) {
			return any(w.Problem).(Hessian[P, H]).Hessian(p)
		})
	}
	w.addCount(optimum.CapHessian, uint64(len(params)))
	return out, err
}

func Apply[O Operator[P, Out], P, Out any](w *Wrapper[O], param P) (Out, error) {
	v, err := any(w.Problem).(Operator[P, Out]).Apply(param)
	w.addCount(optimum.CapOperator, 1)
	return v, err
}

func BulkApply[O Operator[P, Out], P, Out any](w *Wrapper[O], params []P) ([]Out, error) {
	var out []Out
	var err error
	if bo, ok := any(w.Problem).(BulkOperator[P, Out]); ok {
		out, err = bo.BulkApply(params)
	} else {
		parallel := w.Parallel && parallelize(any(w.Problem), optimum.CapOperator)
		out, err = dispatch(parallel, params, func(p P) (Out, error) {
			return any(w.Problem).(Operator[P, Out]).Apply(p)
		})
	}
	w.addCount(optimum.CapOperator, uint64(len(params)))
	return out, err
}

func AnnealAt[O Anneal[P, F], P any, F optimum.Float](w *Wrapper[O], param P, temperature F) (P, error) {
	v, err := any(w.Problem).(Anneal[P, F]).Anneal(param, temperature)
	w.addCount(optimum.CapAnneal, 1)
	return v, err
}

func BulkAnnealAt[O Anneal[P, F], P any, F optimum.Float](w *Wrapper[O], params []P, temperature F) ([]P, error) {
	var out []P
	var err error
	if ba, ok := any(w.Problem).(BulkAnneal[P, F]); ok {
		out, err = ba.BulkAnneal(params, temperature)
	} else {
		parallel := w.Parallel && parallelize(any(w.Problem), optimum.CapAnneal)
		out, err = dispatch(parallel, params, func(p P) (P, error) {
			return any(w.Problem).(Anneal[P, F]).Anneal(p, temperature)
		})
	}
	w.addCount(optimum.CapAnneal, uint64(len(params)))
	return out, err
}
