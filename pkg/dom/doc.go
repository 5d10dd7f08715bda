/*
Package dom models the page a scrolly engine drives.

A page is a well-formed XHTML tree produced by the content generator. The
package wraps github.com/beevik/etree with the handful of operations the
engine needs: class lookups, nearest-ancestor resolution, inline styles,
data attributes and insertion watchers.

# Markup contract

	<section class="scrolly" id="story">
	  <div class="steps">
	    <div class="step" data-step="0" data-content-type="image" ...>...</div>
	  </div>
	  <div class="sticky">
	    <div class="image-container"><img/></div>
	    <div class="map-container" id="story-map"></div>
	    <div class="video-container"></div>
	  </div>
	</section>

A Document is not safe for concurrent mutation. The engine serialises access.
*/
package dom
