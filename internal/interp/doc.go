// Package interp implements the polynomial grid interpolation at the heart
// of the pipeline.
//
// Per axis it computes Lagrange basis weights for the selected node values
// at the query coordinate; across axes the weights combine as a tensor
// product, and the interpolated spectrum is the weighted sum over every
// node combination of the cell. Node spectra that do not share a wavelength
// axis are first aligned linearly onto the finest common axis.
package interp
